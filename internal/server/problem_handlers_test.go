package server

import (
	"net/http"
	"testing"

	"milaan/internal/models"
	"milaan/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProblemsPublic(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/problems", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	problems := decode[[]*models.Problem](t, resp)
	require.Len(t, problems, 5)
	assert.Equal(t, "problem_2", problems[0].ID)
}

func TestGetProblemView(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	t.Run("author and helpers are embedded", func(t *testing.T) {
		t.Parallel()
		resp := doJSON(t, app, http.MethodGet, "/api/problems/problem_2", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		view := decode[*models.ProblemView](t, resp)
		require.NotNil(t, view.User)
		assert.Equal(t, "user_2", view.User.ID)
		require.Len(t, view.Helpers, 2)
		assert.Equal(t, "user_1", view.Helpers[0].ID)
		assert.Equal(t, "user_3", view.Helpers[1].ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		resp := doJSON(t, app, http.MethodGet, "/api/problems/problem_missing", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSearchProblemsEndpoint(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	t.Run("query required", func(t *testing.T) {
		t.Parallel()
		resp := doJSON(t, app, http.MethodGet, "/api/problems/search", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("matches seeded data", func(t *testing.T) {
		t.Parallel()
		resp := doJSON(t, app, http.MethodGet, "/api/problems/search?q=business", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		problems := decode[[]*models.Problem](t, resp)
		require.NotEmpty(t, problems)
		for _, p := range problems {
			assert.Equal(t, "problem_3", p.ID)
		}
	})
}

func TestCreateUpdateDeleteProblem(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	auth := login(t, app, seed.AskerEmail)

	resp := doJSON(t, app, http.MethodPost, "/api/problems", auth.Token, fiber.Map{
		"title":       "Streetlight out on 4th lane",
		"description": "The whole lane is dark after 7pm and it is not safe.",
		"category":    "safety",
		"isUrgent":    true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[*models.Problem](t, resp)
	assert.Equal(t, models.StatusOpen, created.Status)
	assert.Equal(t, auth.User.ID, created.UserID)
	assert.True(t, created.IsUrgent)

	// Newest first for this session.
	listResp := doJSON(t, app, http.MethodGet, "/api/problems", auth.Token, nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	problems := decode[[]*models.Problem](t, listResp)
	require.Len(t, problems, 6)
	assert.Equal(t, created.ID, problems[0].ID)

	updResp := doJSON(t, app, http.MethodPut, "/api/problems/"+created.ID, auth.Token, fiber.Map{
		"title": "Streetlight out on 4th lane (fixed pole number: 17)",
	})
	require.Equal(t, http.StatusOK, updResp.StatusCode)
	updated := decode[*models.Problem](t, updResp)
	assert.Contains(t, updated.Title, "pole number")

	delResp := doJSON(t, app, http.MethodDelete, "/api/problems/"+created.ID, auth.Token, nil)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	// Idempotent: a second delete still succeeds.
	delAgain := doJSON(t, app, http.MethodDelete, "/api/problems/"+created.ID, auth.Token, nil)
	assert.Equal(t, http.StatusNoContent, delAgain.StatusCode)
}

func TestProblemOwnership(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	// asker@example.com is user_2; problem_3 belongs to user_4.
	auth := login(t, app, seed.AskerEmail)

	upd := doJSON(t, app, http.MethodPut, "/api/problems/problem_3", auth.Token, fiber.Map{
		"title": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, upd.StatusCode)

	del := doJSON(t, app, http.MethodDelete, "/api/problems/problem_3", auth.Token, nil)
	assert.Equal(t, http.StatusForbidden, del.StatusCode)
}

func TestUpvoteEndpoint(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	auth := login(t, app, seed.AskerEmail)

	resp := doJSON(t, app, http.MethodPost, "/api/problems/problem_3/upvote", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	problem := decode[*models.Problem](t, resp)
	assert.Equal(t, 8, problem.Upvotes) // seeded at 7

	anon := doJSON(t, app, http.MethodPost, "/api/problems/problem_3/upvote", "", nil)
	assert.Equal(t, http.StatusUnauthorized, anon.StatusCode)
}

func TestOfferHelpEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("helper moves an open problem to in-progress", func(t *testing.T) {
		t.Parallel()
		app, _ := newTestApp(t)
		auth := login(t, app, seed.HelperEmail)

		before := decode[*models.User](t, doJSON(t, app, http.MethodGet, "/api/users/me", auth.Token, nil))

		resp := doJSON(t, app, http.MethodPost, "/api/problems/problem_3/help", auth.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		problem := decode[*models.Problem](t, resp)
		assert.Equal(t, models.StatusInProgress, problem.Status)
		assert.Contains(t, problem.HelperIDs, auth.User.ID)

		again := doJSON(t, app, http.MethodPost, "/api/problems/problem_3/help", auth.Token, nil)
		assert.Equal(t, http.StatusConflict, again.StatusCode)

		// HelpCount is a server-wide derived counter; the seeded identity
		// starts with a nonzero one, so assert the delta.
		me := doJSON(t, app, http.MethodGet, "/api/users/me", auth.Token, nil)
		require.Equal(t, http.StatusOK, me.StatusCode)
		profile := decode[*models.User](t, me)
		assert.Equal(t, before.HelpCount+1, profile.HelpCount)
	})

	t.Run("askers are refused", func(t *testing.T) {
		t.Parallel()
		app, _ := newTestApp(t)
		auth := login(t, app, seed.AskerEmail)

		resp := doJSON(t, app, http.MethodPost, "/api/problems/problem_3/help", auth.Token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

// Each authenticated session works on its own copy of the data; nothing leaks
// across sessions or into the anonymous view.
func TestSessionsAreSandboxed(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	a := login(t, app, seed.AskerEmail)
	b := login(t, app, seed.HelperEmail)

	resp := doJSON(t, app, http.MethodPost, "/api/problems", a.Token, fiber.Map{
		"title":       "Visible only to session A",
		"description": "Mutations stay within the session that made them.",
		"category":    "other",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	inA := decode[[]*models.Problem](t, doJSON(t, app, http.MethodGet, "/api/problems", a.Token, nil))
	inB := decode[[]*models.Problem](t, doJSON(t, app, http.MethodGet, "/api/problems", b.Token, nil))
	anon := decode[[]*models.Problem](t, doJSON(t, app, http.MethodGet, "/api/problems", "", nil))

	assert.Len(t, inA, 6)
	assert.Len(t, inB, 5)
	assert.Len(t, anon, 5)
}
