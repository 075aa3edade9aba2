package userservice

// User профиль пользователя из UserService
type User struct {
	ID       int64   `json:"id"`
	Role     string  `json:"role"`     // CUSTOMER или PROVIDER
	Category *string `json:"category"` // Категория услуг исполнителя (только для PROVIDER)
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
