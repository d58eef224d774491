package model

type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
}

type CreateUserRequest struct {
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
}

type CreateUserResponse struct {
	ID string `json:"id"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type UpdateUserLanguagesRequest struct {
	Languages []string `json:"languages"`
}

type UpdateUserLanguagesResponse struct{}
