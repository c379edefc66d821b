package models

// Friendship links two users. Friendships are stored bidirectionally:
// adding a friend writes both (user, friend) and (friend, user) rows.
type Friendship struct {
	UserID    string
	FriendID  string
	CreatedAt int64
}
