package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for writes that return no entity.
type messageResponse struct {
	Message string `json:"message"`
}

// createdResponse is returned by admin account creation.
type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,userpassword"`
	Address  string `json:"address"  validate:"required,max=400"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,userpassword"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Admin ---

type createStoreRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,userpassword"`
	Address  string `json:"address"  validate:"required,max=400"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,userpassword"`
	Address  string `json:"address"  validate:"required,max=400"`
	Role     string `json:"role"     validate:"required,oneof=admin user store"`
}

// --- Ratings ---

type submitRatingRequest struct {
	StoreID int64 `json:"storeId" validate:"required"`
	Rating  int   `json:"rating"  validate:"required,min=1,max=5"`
}
