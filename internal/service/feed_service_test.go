package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyansetu/internal/models"
	"gyansetu/internal/repository"
)

func seedGuru(t *testing.T, repo *repository.Repository, id, username string, rating float64, expertise string) {
	t.Helper()
	require.NoError(t, repo.User.Create(context.Background(), &models.User{
		ID:        id,
		Role:      models.RoleGuru,
		FirstName: username,
		Username:  username,
		Email:     username + "@example.com",
		Mobile:    id,
		Guru:      &models.GuruProfile{Rating: rating, Expertise: expertise},
	}))
}

func TestFeedService_Gurus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	seedGuru(t, f.repo, "g1", "meera", 4.2, "yoga")
	seedGuru(t, f.repo, "g2", "arjun", 4.9, "Carnatic music")
	seedGuru(t, f.repo, "g3", "gyansetu_owner", 5.0, "Platform")
	seedGuru(t, f.repo, "g4", "kavya", 4.2, "astronomy")
	require.NoError(t, f.repo.User.Create(ctx, &models.User{ID: "s1", Role: models.RoleShishya, Username: "ravi", Email: "r@x.com", Mobile: "s1"}))

	ids := func(users []*models.User) []string {
		out := make([]string, len(users))
		for i, u := range users {
			out[i] = u.ID
		}
		return out
	}

	t.Run("default keeps insertion order without owner", func(t *testing.T) {
		got, err := f.svc.Feed.Gurus(ctx, SortDefault, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"g1", "g2", "g4"}, ids(got))
	})

	t.Run("rating is non-increasing and stable", func(t *testing.T) {
		got, err := f.svc.Feed.Gurus(ctx, SortRating, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"g2", "g1", "g4"}, ids(got))
	})

	t.Run("expertise ascending ignoring case", func(t *testing.T) {
		got, err := f.svc.Feed.Gurus(ctx, ParseGuruSort("Expertise"), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"g4", "g2", "g1"}, ids(got))
	})

	t.Run("query matches expertise", func(t *testing.T) {
		got, err := f.svc.Feed.Gurus(ctx, SortDefault, "MUSIC")
		require.NoError(t, err)
		assert.Equal(t, []string{"g2"}, ids(got))
	})
}

func TestParseGuruSort(t *testing.T) {
	assert.Equal(t, SortRating, ParseGuruSort(" rating "))
	assert.Equal(t, SortDefault, ParseGuruSort("popularity"))
	assert.Equal(t, SortDefault, ParseGuruSort(""))
}

func TestFeedService_FeedNewestFirstWithAuthor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedGuru(t, f.repo, "g1", "meera", 4.2, "yoga")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, f.repo.Post.Create(ctx, &models.Post{
			ID: id, GuruID: "g1", Type: models.PostArticle, Title: id, Content: "x",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	posts, err := f.svc.Feed.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "p3", posts[0].ID)
	assert.Equal(t, "p1", posts[2].ID)
	require.NotNil(t, posts[0].Guru)
	assert.Equal(t, "yoga", posts[0].Guru.Expertise)

	mine, err := f.svc.Feed.GuruPosts(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	_, err = f.svc.Feed.GuruPosts(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	guru := f.signup(t, models.RoleGuru, "meera")
	shishya := f.signup(t, models.RoleShishya, "ravi")

	t.Run("article", func(t *testing.T) {
		post, err := f.svc.Post.CreatePost(ctx, guru, CreatePostRequest{
			Type:    models.PostArticle,
			Title:   "  Breathing <b>basics</b> ",
			Content: "<p>Inhale</p><script>alert(1)</script>",
		})
		require.NoError(t, err)
		assert.Equal(t, "Breathing basics", post.Title)
		assert.Equal(t, "<p>Inhale</p>", post.Content)
		assert.Zero(t, post.Likes)
		assert.Equal(t, guru.ID, post.GuruID)
		require.NotNil(t, post.Guru)
		assert.Equal(t, "meera", post.Guru.Username)
	})

	t.Run("image uploads media", func(t *testing.T) {
		post, err := f.svc.Post.CreatePost(ctx, guru, CreatePostRequest{
			Type:    models.PostImage,
			Title:   "Sunrise",
			Content: "Morning practice",
			Media:   &MediaUpload{FileName: "sun.png", Reader: strings.NewReader("png"), Size: 3},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(post.MediaURL, "https://picsum.photos/"))
	})

	tests := []struct {
		name   string
		author *models.User
		req    CreatePostRequest
		want   error
	}{
		{"shishya cannot post", shishya, CreatePostRequest{Type: models.PostArticle, Title: "t", Content: "c"}, ErrNotGuru},
		{"unknown type", guru, CreatePostRequest{Type: "AUDIO", Title: "t", Content: "c"}, ErrInvalidPost},
		{"missing title", guru, CreatePostRequest{Type: models.PostArticle, Content: "c"}, ErrMissingField},
		{"empty article", guru, CreatePostRequest{Type: models.PostArticle, Title: "t"}, ErrMissingField},
		{"video without media", guru, CreatePostRequest{Type: models.PostVideo, Title: "t", Content: "c"}, ErrMissingMedia},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Post.CreatePost(ctx, tt.author, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
