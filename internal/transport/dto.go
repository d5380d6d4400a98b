package transport

// Response is the uniform envelope for success and soft-failure bodies.
// Clients must treat Success as authoritative: not-found conditions come
// back as HTTP 200 with Success=false and an error code.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

func Fail(message, code string) Response {
	return Response{Success: false, Message: message, Data: nil, Error: code}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type CreateProductRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type UpdateProductRequest struct {
	Name  *string `json:"name"`
	Price *string `json:"price"`
}

type CreatePurchaseRequest struct {
	UserEmail   string `json:"userEmail"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProductSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
