// Package seed provides the demo fixtures every sandbox starts from, plus
// optional randomized records for load-shaped demos.
package seed

import (
	"fmt"
	"time"

	"milaan/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Demo identity emails used throughout the docs and tests. Seeded identities
// carry no password hash and accept any password on login.
const (
	HelperEmail = "helper@example.com"
	AskerEmail  = "asker@example.com"
)

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(fmt.Sprintf("seed: bad timestamp %q: %v", value, err))
	}
	return t
}

// Users returns the four demo identities.
func Users() []*models.User {
	return []*models.User{
		{
			ID:     "user_1",
			Name:   "John Helper",
			Email:  HelperEmail,
			Avatar: "https://randomuser.me/api/portraits/men/1.jpg",
			Bio:    "Dedicated to helping others with social issues. 5 years experience working with NGOs.",
			Role:   models.RoleHelper,
			Location: models.Location{
				Lat: 19.0760, Lng: 72.8777, Address: "Mumbai, India",
			},
			CreatedAt: ts("2023-01-15T10:30:00Z"),
			HelpCount: 27,
			Rating:    4.8,
		},
		{
			ID:     "user_2",
			Name:   "Sara Needy",
			Email:  AskerEmail,
			Avatar: "https://randomuser.me/api/portraits/women/2.jpg",
			Bio:    "Looking for assistance with community projects and personal issues.",
			Role:   models.RoleAsker,
			Location: models.Location{
				Lat: 19.0330, Lng: 73.0297, Address: "Navi Mumbai, India",
			},
			CreatedAt:    ts("2023-02-10T14:20:00Z"),
			ProblemCount: 5,
		},
		{
			ID:     "user_3",
			Name:   "Amit Volunteer",
			Email:  "amit@example.com",
			Avatar: "https://randomuser.me/api/portraits/men/3.jpg",
			Bio:    "NGO worker with expertise in education and healthcare.",
			Role:   models.RoleHelper,
			Location: models.Location{
				Lat: 18.9220, Lng: 72.8347, Address: "South Mumbai, India",
			},
			CreatedAt: ts("2022-11-05T09:15:00Z"),
			HelpCount: 42,
			Rating:    4.9,
		},
		{
			ID:     "user_4",
			Name:   "Priya Sharma",
			Email:  "priya@example.com",
			Avatar: "https://randomuser.me/api/portraits/women/4.jpg",
			Bio:    "Seeking help with community development initiatives in my neighborhood.",
			Role:   models.RoleAsker,
			Location: models.Location{
				Lat: 19.1176, Lng: 72.9060, Address: "Powai, Mumbai, India",
			},
			CreatedAt:    ts("2023-03-18T11:45:00Z"),
			ProblemCount: 3,
		},
	}
}

// Problems returns the demo problems, most recent first.
func Problems() []*models.Problem {
	return []*models.Problem{
		{
			ID:          "problem_2",
			Title:       "Urgent: Need help with flood relief efforts",
			Description: "Our area has been affected by recent floods. We need volunteers to help distribute supplies and assist with cleanup efforts. Any help is appreciated.",
			Category:    models.CategoryDisaster,
			Status:      models.StatusInProgress,
			Location: models.Location{
				Lat: 19.0330, Lng: 73.0297, Address: "Kalyan, Maharashtra, India",
			},
			Images:    []string{"https://images.pexels.com/photos/1732305/pexels-photo-1732305.jpeg"},
			UserID:    "user_2",
			HelperIDs: []string{"user_1", "user_3"},
			CreatedAt: ts("2023-06-15T14:20:00Z"),
			UpdatedAt: ts("2023-06-16T09:45:00Z"),
			Upvotes:   42,
			IsUrgent:  true,
		},
		{
			ID:          "problem_3",
			Title:       "Need guidance for starting a small business",
			Description: "I am a single mother looking to start a small tailoring business from home. Need advice on business registration, marketing, and securing small loans.",
			Category:    models.CategoryBusiness,
			Status:      models.StatusOpen,
			Location: models.Location{
				Lat: 18.9220, Lng: 72.8347, Address: "Dadar, Mumbai, India",
			},
			UserID:    "user_4",
			CreatedAt: ts("2023-06-01T11:15:00Z"),
			UpdatedAt: ts("2023-06-01T11:15:00Z"),
			Upvotes:   7,
		},
		{
			ID:          "problem_4",
			Title:       "Seeking mentorship for underprivileged children",
			Description: "Looking for mentors who can spare 2 hours a week to guide high school students from low-income families with career advice and academic support.",
			Category:    models.CategoryEducation,
			Status:      models.StatusOpen,
			Location: models.Location{
				Lat: 19.1176, Lng: 72.9060, Address: "Thane, Maharashtra, India",
			},
			Images:    []string{"https://images.pexels.com/photos/8363104/pexels-photo-8363104.jpeg"},
			UserID:    "user_2",
			CreatedAt: ts("2023-05-25T16:40:00Z"),
			UpdatedAt: ts("2023-05-25T16:40:00Z"),
			Upvotes:   23,
		},
		{
			ID:          "problem_1",
			Title:       "Need assistance with setting up a community library",
			Description: "We have collected books but need help organizing and setting up a small library in our community center. Looking for volunteers with experience in library management.",
			Category:    models.CategoryEducation,
			Status:      models.StatusOpen,
			Location: models.Location{
				Lat: 19.0760, Lng: 72.8777, Address: "Andheri, Mumbai, India",
			},
			Images: []string{
				"https://images.pexels.com/photos/159711/books-bookstore-book-reading-159711.jpeg",
				"https://images.pexels.com/photos/1319854/pexels-photo-1319854.jpeg",
			},
			UserID:    "user_4",
			CreatedAt: ts("2023-05-10T08:30:00Z"),
			UpdatedAt: ts("2023-05-10T08:30:00Z"),
			Upvotes:   15,
		},
		{
			ID:          "problem_5",
			Title:       "Need legal advice regarding property dispute",
			Description: "My family is facing a property dispute after my father passed away. Need guidance on legal procedures and documentation required.",
			Category:    models.CategoryLegal,
			Status:      models.StatusSolved,
			Location: models.Location{
				Lat: 19.0178, Lng: 72.8478, Address: "Bandra, Mumbai, India",
			},
			UserID:    "user_4",
			HelperIDs: []string{"user_3"},
			CreatedAt: ts("2023-04-12T10:30:00Z"),
			UpdatedAt: ts("2023-04-20T15:10:00Z"),
			Upvotes:   12,
		},
	}
}

// Comments returns the demo comments. Comment counts on the problems are
// recomputed at load time, so these are the authoritative collection.
func Comments() []*models.Comment {
	return []*models.Comment{
		{
			ID:        "comment_1",
			Content:   "I can help organize the books and set up a catalog system. I have experience setting up a community library in my previous locality.",
			ProblemID: "problem_1",
			UserID:    "user_1",
			CreatedAt: ts("2023-05-10T10:15:00Z"),
		},
		{
			ID:        "comment_2",
			Content:   "Our NGO has furniture that could be donated to your library setup. Please contact me to arrange logistics.",
			ProblemID: "problem_1",
			UserID:    "user_3",
			CreatedAt: ts("2023-05-11T09:30:00Z"),
		},
		{
			ID:        "comment_3",
			Content:   "My team of volunteers is heading to Kalyan tomorrow. We have supplies and equipment for cleanup. Will coordinate with you directly.",
			ProblemID: "problem_2",
			UserID:    "user_1",
			CreatedAt: ts("2023-06-16T08:45:00Z"),
		},
		{
			ID:         "comment_4",
			Content:    "Our organization can offer microloans for small businesses like yours. We also provide free business training workshops.",
			ProblemID:  "problem_3",
			UserID:     "user_3",
			CreatedAt:  ts("2023-06-02T14:20:00Z"),
			IsSolution: true,
		},
	}
}

// ExtraUsers generates n randomized users split across both roles.
func ExtraUsers(n int) []*models.User {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		role := models.RoleAsker
		if i%2 == 0 {
			role = models.RoleHelper
		}
		u := &models.User{
			ID:     "user_" + uuid.NewString(),
			Name:   gofakeit.Name(),
			Email:  gofakeit.Email(),
			Avatar: fmt.Sprintf("https://randomuser.me/api/portraits/men/%d.jpg", gofakeit.Number(1, 99)),
			Bio:    gofakeit.Sentence(12),
			Role:   role,
			Location: models.Location{
				Lat:     gofakeit.Latitude(),
				Lng:     gofakeit.Longitude(),
				Address: gofakeit.City() + ", " + gofakeit.Country(),
			},
			CreatedAt: gofakeit.DateRange(
				time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			),
		}
		if role == models.RoleHelper {
			u.HelpCount = gofakeit.Number(0, 50)
			u.Rating = float64(gofakeit.Number(30, 50)) / 10
		}
		users = append(users, u)
	}
	return users
}

// ExtraProblems generates n randomized open problems authored by the given
// users (askers preferred; any user when no asker is present).
func ExtraProblems(n int, authors []*models.User) []*models.Problem {
	if len(authors) == 0 {
		return nil
	}
	var askers []*models.User
	for _, u := range authors {
		if u.Role == models.RoleAsker {
			askers = append(askers, u)
		}
	}
	if len(askers) == 0 {
		askers = authors
	}

	categories := models.Categories()
	problems := make([]*models.Problem, 0, n)
	for i := 0; i < n; i++ {
		author := askers[i%len(askers)]
		created := gofakeit.DateRange(
			time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 6, 20, 0, 0, 0, 0, time.UTC),
		)
		problems = append(problems, &models.Problem{
			ID:          "problem_" + uuid.NewString(),
			Title:       gofakeit.Sentence(6),
			Description: gofakeit.Paragraph(1, 3, 12, " "),
			Category:    categories[gofakeit.Number(0, len(categories)-1)],
			Status:      models.StatusOpen,
			Location: models.Location{
				Lat:     gofakeit.Latitude(),
				Lng:     gofakeit.Longitude(),
				Address: gofakeit.City() + ", India",
			},
			UserID:    author.ID,
			CreatedAt: created,
			UpdatedAt: created,
			Upvotes:   gofakeit.Number(0, 40),
			IsUrgent:  gofakeit.Number(0, 9) == 0,
		})
	}
	return problems
}
