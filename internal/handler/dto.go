package handler

type SubscribeRequest struct {
	Email   string   `json:"email"`
	Symbols []string `json:"symbols"`
}
