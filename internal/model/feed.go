package model

// FeedPageSize is the fixed number of posts per server-rendered page.
const FeedPageSize = 10

// Pagination describes the position of a page within a listing.
type Pagination struct {
	Page     int
	NumPages int
	Count    int
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.NumPages }
func (p Pagination) PrevPage() int { return p.Page - 1 }
func (p Pagination) NextPage() int { return p.Page + 1 }

// FeedPage is one page of a post listing plus its pagination state.
type FeedPage struct {
	Posts      []Post
	Pagination Pagination
}

// ProfilePage is the profile feed plus the author's stats and the viewer's
// follow affordance.
type ProfilePage struct {
	Author    *User
	PostCount int
	Following bool
	Feed      FeedPage
}
