package handler

// --- Requests ---

type registerRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required,min=6" example:"s3cret!"`
}

type loginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"password123"`
}

// createAppearanceRequest uses pointers so absent fields can be told apart from zero values.
type createAppearanceRequest struct {
	Rating    *int   `json:"rating" example:"5"`
	GuestID   *int64 `json:"guest_id" example:"1"`
	EpisodeID *int64 `json:"episode_id" example:"1"`
}

// --- Responses ---

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

type guestResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Occupation string `json:"occupation"`
}

type episodeResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date" example:"2024-01-15"`
	Number int    `json:"number"`
}

type episodeDetailResponse struct {
	episodeResponse
	Appearances []appearanceResponse `json:"appearances"`
}

type appearanceResponse struct {
	ID        int64 `json:"id"`
	Rating    int   `json:"rating"`
	GuestID   int64 `json:"guest_id"`
	EpisodeID int64 `json:"episode_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
