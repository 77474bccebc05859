package church_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/newcreaturechurch/church-api/pkg/churchsdk"
)

// TestPrayerRequestLifecycle covers prayer requests end to end:
// 1. A member files an anonymous request
// 2. Another member sees it without the requester and prays for it
// 3. The requester closes it with a testimony
func TestPrayerRequestLifecycle(t *testing.T) {
	baseURL, cleanup := setupChurchContainer(t)
	defer cleanup()

	client := churchsdk.NewClient(baseURL)
	requester := registerMember(t, client, "grace@example.com", "Grace", "Kim")
	supporter := registerMember(t, client, "sam@example.com", "Sam", "Lee")

	created, err := requester.CreatePrayerRequest(t.Context(), churchsdk.PrayerRequestInput{
		Title:     "Healing for my mother",
		Category:  "family",
		Anonymous: true,
		Urgent:    true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Requester, "Requester sees their own identity")

	// Another member sees the request without the requester.
	seen, err := supporter.GetPrayerRequest(t.Context(), created.ID)
	require.NoError(t, err)
	require.Empty(t, seen.Requester, "Anonymous request hides the requester")
	require.True(t, seen.Urgent)

	// Praying counts once.
	prayed, err := supporter.Pray(t.Context(), created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, prayed.PrayerCount)

	prayed, err = supporter.Pray(t.Context(), created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, prayed.PrayerCount, "Praying twice should not move the count")

	// The requester closes the request with a testimony.
	answered, err := requester.MarkAnswered(t.Context(), created.ID, "Fully recovered")
	require.NoError(t, err)
	require.True(t, answered.Answered)
	require.Equal(t, "Fully recovered", answered.AnswerNotes)
	require.NotNil(t, answered.AnsweredAt)
}

func TestPrayerRequestPermissions(t *testing.T) {
	baseURL, cleanup := setupChurchContainer(t)
	defer cleanup()

	client := churchsdk.NewClient(baseURL)
	requester := registerMember(t, client, "grace@example.com", "Grace", "Kim")
	other := registerMember(t, client, "sam@example.com", "Sam", "Lee")
	admin := adminLogin(t, client)

	created, err := requester.CreatePrayerRequest(t.Context(), churchsdk.PrayerRequestInput{
		Title:    "Guidance",
		Category: "personal",
	})
	require.NoError(t, err)

	// Only the requester or staff may answer.
	_, err = other.MarkAnswered(t.Context(), created.ID, "not yours to close")
	assertAPICode(t, err, "INSUFFICIENT_PERMISSIONS", "Unrelated member answering")

	_, err = admin.MarkAnswered(t.Context(), created.ID, "Prayed with the family")
	require.NoError(t, err)

	// Deleting follows the same rule.
	err = other.DeletePrayerRequest(t.Context(), created.ID)
	assertAPICode(t, err, "INSUFFICIENT_PERMISSIONS", "Unrelated member deleting")

	require.NoError(t, requester.DeletePrayerRequest(t.Context(), created.ID))
}
