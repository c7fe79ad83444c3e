package transfer

// File is an uploaded file read fully into memory.
type File struct {
	Filename string
	Content  []byte
}

type EventCreation struct {
	Title    string
	Location string
	Link     string
}

// EventSchedule carries Quito wall-clock strings as produced by a
// datetime-local input.
type EventSchedule struct {
	DateStart string  `json:"date_start"`
	DateEnd   *string `json:"date_end"`
}

type ReviewInput struct {
	Rating     *int    `json:"rating"`
	ReviewText *string `json:"review_text"`
}

type ProfileUpdate struct {
	DisplayName string `json:"display_name"`
}

type UploadResult[T any] struct {
	Saved []T    `json:"saved"`
	Error string `json:"error,omitempty"`
}
