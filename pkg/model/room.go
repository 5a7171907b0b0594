package model

type Room struct {
	ID       string `csv:"RoomNo" validate:"required"`
	Type     string `csv:"Type" validate:"required"`
	Capacity int    `csv:"Capacity" validate:"gte=0"`
}
