package seats

type HoldSeatsRequest struct {
	SeatNumbers []string `json:"seat_numbers" binding:"required,min=1,max=9,dive,required"`
}
