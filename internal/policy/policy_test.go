package policy

import (
	"reflect"
	"testing"
	"time"

	"blogium/internal/models"
)

var today = time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

func makePost(id, authorID uint, pubDate time.Time, published, categoryPublished bool) models.Post {
	return models.Post{
		ID:          id,
		AuthorID:    authorID,
		PubDate:     pubDate,
		IsPublished: published,
		Category:    models.Category{ID: 1, IsPublished: categoryPublished},
	}
}

func TestCanViewPost(t *testing.T) {
	author := &models.User{ID: 2, Username: "alice"}
	other := &models.User{ID: 3, Username: "bob"}
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name   string
		post   models.Post
		viewer *models.User
		want   bool
	}{
		{"live post, anonymous", makePost(1, 2, today, true, true), nil, true},
		{"live post, other user", makePost(1, 2, today, true, true), other, true},
		{"draft, anonymous", makePost(1, 2, today, false, true), nil, false},
		{"draft, author", makePost(1, 2, today, false, true), author, true},
		{"draft, other user", makePost(1, 2, today, false, true), other, false},
		{"hidden category, anonymous", makePost(1, 2, today, true, false), nil, false},
		{"hidden category, author", makePost(1, 2, today, true, false), author, true},
		{"scheduled tomorrow, anonymous", makePost(1, 2, tomorrow, true, true), nil, false},
		{"scheduled tomorrow, author", makePost(1, 2, tomorrow, true, true), author, true},
		{"scheduled tomorrow, other user", makePost(1, 2, tomorrow, true, true), other, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewPost(tt.post, tt.viewer, today); got != tt.want {
				t.Errorf("CanViewPost() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A post dated later today is live already: scheduling works on
// calendar dates, not timestamps.
func TestCanViewPostSameDayLaterHour(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)
	post := makePost(1, 2, time.Date(2025, 6, 15, 23, 30, 0, 0, time.Local), true, true)
	if !CanViewPost(post, nil, DateOf(now)) {
		t.Error("post dated later today should be visible from local midnight")
	}
}

// Anonymous visibility must equal the live predicate exactly.
func TestCanViewPostAnonymousMatchesLive(t *testing.T) {
	dates := []time.Time{today.AddDate(0, 0, -1), today, today.AddDate(0, 0, 1)}
	for _, d := range dates {
		for _, published := range []bool{true, false} {
			for _, catPublished := range []bool{true, false} {
				p := makePost(1, 2, d, published, catPublished)
				if CanViewPost(p, nil, today) != Live(p, today) {
					t.Errorf("anonymous visibility diverged from Live for %+v", p)
				}
			}
		}
	}
}

func TestCanViewCategoryListing(t *testing.T) {
	if !CanViewCategoryListing(models.Category{Slug: "travel", IsPublished: true}) {
		t.Error("published category listing should be visible")
	}
	if CanViewCategoryListing(models.Category{Slug: "travel", IsPublished: false}) {
		t.Error("unpublished category listing should be hidden for every viewer")
	}
}

func TestCanMutate(t *testing.T) {
	alice := &models.User{ID: 2}
	bob := &models.User{ID: 3}

	tests := []struct {
		name     string
		authorID uint
		viewer   *models.User
		want     bool
	}{
		{"owner", 2, alice, true},
		{"non-owner", 2, bob, false},
		{"anonymous", 2, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutate(tt.authorID, tt.viewer); got != tt.want {
				t.Errorf("CanMutate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterLive(t *testing.T) {
	posts := []models.Post{
		makePost(1, 2, today.AddDate(0, 0, -3), true, true),
		makePost(2, 2, today.AddDate(0, 0, 1), true, true),  // future
		makePost(3, 2, today.AddDate(0, 0, -1), false, true), // draft
		makePost(4, 2, today.AddDate(0, 0, -1), true, false), // hidden category
		makePost(5, 2, today.AddDate(0, 0, -1), true, true),
		makePost(6, 2, today, true, true),
		makePost(7, 2, today.AddDate(0, 0, -1), true, true), // same date as 5
	}

	live := FilterLive(posts, today)

	wantIDs := []uint{6, 5, 7, 1}
	gotIDs := make([]uint, len(live))
	for i, p := range live {
		gotIDs[i] = p.ID
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Fatalf("FilterLive order = %v, want %v", gotIDs, wantIDs)
	}

	// Newest first throughout.
	for i := 1; i < len(live); i++ {
		if live[i].PubDate.After(live[i-1].PubDate) {
			t.Fatalf("posts not ordered newest first at index %d", i)
		}
	}

	// Idempotent: filtering the result again changes nothing.
	again := FilterLive(live, today)
	if !reflect.DeepEqual(again, live) {
		t.Error("FilterLive is not idempotent")
	}
}

func TestFilterLiveDoesNotModifyInput(t *testing.T) {
	posts := []models.Post{
		makePost(1, 2, today.AddDate(0, 0, -2), true, true),
		makePost(2, 2, today.AddDate(0, 0, -1), true, true),
	}
	FilterLive(posts, today)
	if posts[0].ID != 1 || posts[1].ID != 2 {
		t.Error("input slice was reordered")
	}
}

func TestProfileListing(t *testing.T) {
	owner := models.User{ID: 2, Username: "alice"}
	other := &models.User{ID: 3, Username: "bob"}

	posts := []models.Post{
		makePost(1, 2, today.AddDate(0, 0, -2), true, true),
		makePost(2, 2, today.AddDate(0, 0, 5), true, true),   // future
		makePost(3, 2, today.AddDate(0, 0, -1), false, true), // draft
	}

	own := ProfileListing(owner, &owner, posts, today)
	if len(own) != 3 {
		t.Fatalf("owner should see all posts, got %d", len(own))
	}
	if own[0].ID != 2 || own[1].ID != 3 || own[2].ID != 1 {
		t.Errorf("owner listing not newest first: %v", []uint{own[0].ID, own[1].ID, own[2].ID})
	}

	foreign := ProfileListing(owner, other, posts, today)
	if len(foreign) != 1 || foreign[0].ID != 1 {
		t.Fatalf("other viewers should see only live posts, got %v", foreign)
	}

	anon := ProfileListing(owner, nil, posts, today)
	if len(anon) != 1 {
		t.Fatalf("anonymous should see only live posts, got %d", len(anon))
	}

	// Self view is always a superset of anyone else's view.
	if len(own) < len(foreign) {
		t.Error("owner view smaller than foreign view")
	}
}

func TestDateOf(t *testing.T) {
	in := time.Date(2025, 6, 15, 23, 59, 59, 0, time.Local)
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	if got := DateOf(in); !got.Equal(want) {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}
}

// Live and LiveScope express the same rule twice, once for in-memory
// filtering and once as SQL. This pins them together: for every
// combination of flags and pub dates around the day boundary, Live
// must agree with the condition LiveScope sends to the database.
func TestLiveMatchesScopePredicate(t *testing.T) {
	tomorrow := today.AddDate(0, 0, 1)

	dates := []time.Time{
		today.AddDate(0, 0, -30),
		today.Add(-time.Second),
		today,
		today.Add(8 * time.Hour),
		tomorrow.Add(-time.Second),
		tomorrow,
		tomorrow.Add(8 * time.Hour),
		today.AddDate(0, 0, 30),
	}

	for _, published := range []bool{true, false} {
		for _, categoryPublished := range []bool{true, false} {
			for _, pubDate := range dates {
				p := makePost(1, 2, pubDate, published, categoryPublished)
				inMemory := Live(p, today)
				inSQL := p.IsPublished && p.Category.IsPublished && p.PubDate.Before(tomorrow)
				if inMemory != inSQL {
					t.Errorf("pub_date=%v published=%v categoryPublished=%v: Live=%v, scope predicate=%v",
						pubDate, published, categoryPublished, inMemory, inSQL)
				}
			}
		}
	}
}
