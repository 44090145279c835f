package dto

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Tasks    string `json:"tasks"`
}

type EditUserRequest struct {
	Tasks string `json:"tasks"`
}

// DeleteListingsRequest carries an admin bulk-delete order. Exactly one of
// RecordsToDelete or SelectedDate drives the delete. Key values stay untyped
// because the delete key column differs per table (numeric ids, urls,
// tdn numbers).
type DeleteListingsRequest struct {
	TableName       string `json:"tableName"`
	RecordsToDelete []any  `json:"recordsToDelete"`
	SelectedDate    string `json:"selectedDate"`
	UserName        string `json:"userName"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
