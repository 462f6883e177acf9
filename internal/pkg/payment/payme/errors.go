package payme

// Error codes from the Payme merchant API protocol. Codes in the
// -31050..-31099 band are account-field errors; Data names the offending
// field.
const (
	CodeInvalidAmount       = -31001
	CodeTransactionNotFound = -31003
	CodeCantDoOperation     = -31008
	CodeUserNotFound        = -31050
	CodeProductNotFound     = -31051
	CodeUnauthorized        = -32504
	CodeMethodNotFound      = -32601
)

func errInvalidAmount() *Error {
	return &Error{
		Code: CodeInvalidAmount,
		Message: Message{
			UZ: "Noto'g'ri summa",
			RU: "Неверная сумма",
			EN: "Invalid amount",
		},
	}
}

func errTransactionNotFound() *Error {
	return &Error{
		Code: CodeTransactionNotFound,
		Message: Message{
			UZ: "Tranzaksiya topilmadi",
			RU: "Транзакция не найдена",
			EN: "Transaction not found",
		},
	}
}

func errCantDoOperation() *Error {
	return &Error{
		Code: CodeCantDoOperation,
		Message: Message{
			UZ: "Amalni bajarib bo'lmaydi",
			RU: "Невозможно выполнить операцию",
			EN: "Can't do operation",
		},
	}
}

func errUserNotFound() *Error {
	return &Error{
		Code: CodeUserNotFound,
		Message: Message{
			UZ: "Foydalanuvchi topilmadi",
			RU: "Пользователь не найден",
			EN: "User not found",
		},
		Data: "user_id",
	}
}

func errProductNotFound() *Error {
	return &Error{
		Code: CodeProductNotFound,
		Message: Message{
			UZ: "Mahsulot topilmadi",
			RU: "Товар не найден",
			EN: "Product not found",
		},
		Data: "planId",
	}
}

func errUnauthorized() *Error {
	return &Error{
		Code: CodeUnauthorized,
		Message: Message{
			UZ: "Avtorizatsiya xatosi",
			RU: "Ошибка авторизации",
			EN: "Unauthorized",
		},
	}
}

func errMethodNotFound() *Error {
	return &Error{
		Code: CodeMethodNotFound,
		Message: Message{
			UZ: "Metod topilmadi",
			RU: "Метод не найден",
			EN: "Method not found",
		},
	}
}
