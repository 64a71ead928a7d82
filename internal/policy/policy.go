package policy

import (
	"sort"
	"time"

	"blogium/internal/models"

	"gorm.io/gorm"
)

// Visibility and ownership rules for posts, comments and categories.
// Every function is a pure predicate over already-fetched records; the
// viewer is passed explicitly on each call (nil means anonymous).

// Today returns the current server-local calendar date at midnight.
// Scheduling compares dates, not instants: a post dated today is live
// from local midnight regardless of its time of day.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf truncates t to its local calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Live reports whether a post is publicly visible on the given date:
// the post and its category are published and its pub date is not in
// the future. Category must be preloaded on the post.
func Live(p models.Post, today time.Time) bool {
	return p.IsPublished && p.Category.IsPublished && !DateOf(p.PubDate).After(today)
}

// CanViewPost grants access to live posts, and to the author
// regardless of published flags or date. A false result must surface
// as "not found", never as a permission error: hidden posts do not
// reveal their existence.
func CanViewPost(p models.Post, viewer *models.User, today time.Time) bool {
	if Live(p, today) {
		return true
	}
	return viewer != nil && viewer.ID == p.AuthorID
}

// CanViewCategoryListing reports whether a category's listing page is
// reachable. There is no author override here: listings never
// special-case authorship, only the single-post view does.
func CanViewCategoryListing(c models.Category) bool {
	return c.IsPublished
}

// CanMutate reports whether the viewer may edit or delete a resource
// owned by authorID. Ownership is the only authorization axiom; there
// is no admin or moderator override. A false result must surface as a
// redirect to the resource's read view, not an error page.
func CanMutate(authorID uint, viewer *models.User) bool {
	return viewer != nil && viewer.ID == authorID
}

// FilterLive returns the live subsequence of posts ordered by pub
// date descending, keeping the input order on equal dates. The input
// is not modified. Applying it to its own output is a no-op.
func FilterLive(posts []models.Post, today time.Time) []models.Post {
	live := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if Live(p, today) {
			live = append(live, p)
		}
	}
	sortNewestFirst(live)
	return live
}

// ProfileListing returns the posts shown on owner's profile page. The
// owner viewing their own profile sees everything, drafts and future
// posts included; everyone else sees only the live subsequence. Posts
// must already be scoped to the owner by the caller.
func ProfileListing(owner models.User, viewer *models.User, posts []models.Post, today time.Time) []models.Post {
	if viewer != nil && viewer.ID == owner.ID {
		all := make([]models.Post, len(posts))
		copy(all, posts)
		sortNewestFirst(all)
		return all
	}
	return FilterLive(posts, today)
}

func sortNewestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PubDate.After(posts[j].PubDate)
	})
}

// LiveScope pushes the Live predicate into a posts query so listings
// can count and paginate server-side. Callers order the result with
// NewestFirst; count queries reuse the scope as is.
func LiveScope(today time.Time) func(*gorm.DB) *gorm.DB {
	tomorrow := today.AddDate(0, 0, 1)
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ? AND categories.is_published = ? AND posts.pub_date < ?",
				true, true, tomorrow)
	}
}

// NewestFirst is the listing order: pub date descending, id breaking
// ties deterministically.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("posts.pub_date DESC, posts.id ASC")
}
