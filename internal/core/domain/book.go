package domain

// Book is a catalogue entry with no access control.
type Book struct {
	ID     string `json:"id" bson:"_id"`
	Title  string `json:"title" bson:"title"`
	Author string `json:"author" bson:"author"`
}

// BookFields carries a candidate book or a partial update.
type BookFields struct {
	Title  *string
	Author *string
}
