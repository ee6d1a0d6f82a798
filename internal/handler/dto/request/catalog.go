package request

type CreateMovieRequest struct {
	Title      string `json:"title" binding:"required"`
	RuntimeMin int    `json:"runtime_min" binding:"required,gt=0"`
}

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Rows        int    `json:"rows" binding:"required,gt=0"`
	SeatsPerRow int    `json:"seats_per_row" binding:"required,gt=0"`
}

type SetParameterRequest struct {
	Value int `json:"value" binding:"required,gt=0"`
}
