package response

import "rentfleet/internal/usecase/queries"

type LoginResponse struct {
	User *queries.AuthorizedUserView `json:"user"`
}
