package domain

import "time"

// Vote is one user's single recorded choice for one poll. Votes are immutable;
// they are never updated or deleted.
//
// The bson field names keep the collection layout used by the previous
// deployment, so its historical votes stay readable.
type Vote struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	PollID    string    `bson:"enquete_id" json:"poll_id"`
	UserID    string    `bson:"usuario" json:"user_id"`
	UserRole  string    `bson:"cargo" json:"user_role"`
	Choice    string    `bson:"resposta" json:"choice"`
	CreatedAt time.Time `bson:"data_hora" json:"created_at"`
}
