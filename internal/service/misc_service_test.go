package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyansetu/internal/models"
	"gyansetu/internal/repository"
)

func TestPreferenceService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	prefs, err := f.svc.Preference.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "en", prefs.Language)
	assert.Equal(t, "system", prefs.Theme)

	prefs, err = f.svc.Preference.Update(ctx, "u1", "hi-IN", "")
	require.NoError(t, err)
	assert.Equal(t, "hi", prefs.Language)
	assert.Equal(t, "system", prefs.Theme)

	prefs, err = f.svc.Preference.Update(ctx, "u1", "", "Dark")
	require.NoError(t, err)
	assert.Equal(t, "hi", prefs.Language)
	assert.Equal(t, "dark", prefs.Theme)

	_, err = f.svc.Preference.Update(ctx, "u1", "", "sepia")
	assert.ErrorIs(t, err, ErrUnsupportedTheme)

	_, err = f.svc.Preference.Update(ctx, "u1", "!!", "")
	assert.ErrorIs(t, err, ErrInvalidField)

	stored, err := f.repo.Preference.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "dark", stored.Theme)
}

func TestResolveLanguage(t *testing.T) {
	for tag, want := range map[string]string{
		"en":    "en",
		"ta-IN": "ta",
		"es-MX": "es",
		"kn":    "kn",
	} {
		got, err := ResolveLanguage(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got, tag)
	}
}

func TestFeedbackService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Feedback.Submit(ctx, "u1", "   ")
	assert.ErrorIs(t, err, ErrEmptyFeedback)

	rec, err := f.svc.Feedback.Submit(ctx, "u1", "<b>Great</b> platform")
	require.NoError(t, err)
	assert.Equal(t, "Great platform", rec.FeedbackText)

	list, err := f.svc.Feedback.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)
}

func TestStatsService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	guru := f.guru(t, "asha")
	shishya := f.signup(t, models.RoleShishya, "ravi")
	seedGuru(t, f.repo, "owner", "gyansetu_owner", 5, "Platform")

	post, err := f.svc.Post.CreatePost(ctx, guru, CreatePostRequest{Type: models.PostArticle, Title: "t", Content: "c"})
	require.NoError(t, err)
	_, err = f.svc.Payment.Pay(ctx, shishya, post.ID, 101)
	require.NoError(t, err)

	stats, err := f.svc.Stats.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Gurus)
	assert.Equal(t, 1, stats.Shishyas)
	assert.Equal(t, 1, stats.Posts)
	assert.Equal(t, 0, stats.Calls)
	assert.InDelta(t, 101.0, stats.DakshinaVolume, 1e-9)
	assert.InDelta(t, 10.1, stats.CommissionTotal, 1e-9)
}

func TestProfileService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	guru := f.guru(t, "asha")
	shishya := f.signup(t, models.RoleShishya, "ravi")

	t.Run("bank details are masked", func(t *testing.T) {
		got, err := f.svc.Profile.Get(ctx, guru.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Guru.BankDetails)
		assert.Equal(t, "XXXX XXXX 9012", got.Guru.BankDetails.AccountNumber)
		assert.Equal(t, "SBIN0001", got.Guru.BankDetails.IFSC)
		assert.Equal(t, "asha@upi", got.Guru.UPIID)
	})

	t.Run("guru fields refused for shishya", func(t *testing.T) {
		bio := "hello"
		_, err := f.svc.Profile.UpdateProfile(ctx, shishya.ID, UpdateProfileRequest{Bio: &bio})
		assert.ErrorIs(t, err, ErrNotGuru)

		_, err = f.svc.Profile.UpdateBankDetails(ctx, shishya.ID, models.BankDetails{AccountHolder: "r", AccountNumber: "1", IFSC: "i", UPIID: "u"})
		assert.ErrorIs(t, err, ErrNotGuru)
	})

	t.Run("username change rechecks uniqueness", func(t *testing.T) {
		taken := "ASHA"
		_, err := f.svc.Profile.UpdateProfile(ctx, shishya.ID, UpdateProfileRequest{Username: &taken})
		assert.ErrorIs(t, err, repository.ErrUsernameExists)
	})

	t.Run("edit refreshes session snapshot", func(t *testing.T) {
		res, err := f.svc.Auth.Login(ctx, "asha", "secret1")
		require.NoError(t, err)

		expertise := "Hatha yoga"
		age := 34
		updated, err := f.svc.Profile.UpdateProfile(ctx, guru.ID, UpdateProfileRequest{Expertise: &expertise, Age: &age})
		require.NoError(t, err)
		assert.Equal(t, "Hatha yoga", updated.Guru.Expertise)

		session, err := f.svc.Auth.Authenticate(ctx, res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "Hatha yoga", session.User.Guru.Expertise)
		assert.Equal(t, 34, session.User.Guru.Age)
	})

	t.Run("avatar without upload gets generated url", func(t *testing.T) {
		before, _ := f.svc.Profile.Get(ctx, shishya.ID)
		after, err := f.svc.Profile.ChangeAvatar(ctx, shishya.ID, nil)
		require.NoError(t, err)
		assert.NotEqual(t, before.ProfilePictureURL, after.ProfilePictureURL)
	})
}
