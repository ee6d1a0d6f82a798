package response

import (
	"time"

	"cinebox/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type MovieResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	RuntimeMin int       `json:"runtimeMin"`
	CreatedAt  time.Time `json:"createdAt"`
}

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type ScreeningResponse struct {
	RoomID     uuid.UUID `json:"roomId"`
	RoomName   string    `json:"roomName,omitempty"`
	StartTime  time.Time `json:"startTime"`
	MovieID    uuid.UUID `json:"movieId"`
	MovieTitle string    `json:"movieTitle,omitempty"`
	RuntimeMin int       `json:"runtimeMin,omitempty"`
	Visibility string    `json:"visibility"`
}

type ParameterResponse struct {
	ID    int `json:"id"`
	Value int `json:"value"`
}

func FromMovieViews(views []*queries.MovieView) []*MovieResponse {
	out := make([]*MovieResponse, 0, len(views))
	_ = copier.Copy(&out, &views)
	return out
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, 0, len(views))
	_ = copier.Copy(&out, &views)
	return out
}

func FromScreeningViews(views []*queries.ScreeningView) []*ScreeningResponse {
	out := make([]*ScreeningResponse, 0, len(views))
	_ = copier.Copy(&out, &views)
	return out
}
