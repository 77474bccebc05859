package church_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/newcreaturechurch/church-api/pkg/churchsdk"
)

// TestSermonArchive covers the sermon archive end to end:
// 1. The bootstrap admin archives a sermon
// 2. Anonymous callers browse it and views are counted
// 3. Hidden sermons stay invisible to anonymous callers
func TestSermonArchive(t *testing.T) {
	baseURL, cleanup := setupChurchContainer(t)
	defer cleanup()

	client := churchsdk.NewClient(baseURL)
	admin := adminLogin(t, client)

	sermon, err := admin.CreateSermon(t.Context(), churchsdk.SermonInput{
		Title:     "On Grace",
		Scripture: "Ephesians 2:8-9",
		Date:      time.Now(),
		Tags:      []string{"grace", "salvation"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, sermon.Preacher)
	require.Zero(t, sermon.ViewCount)

	// Anonymous playback counts a view.
	viewed, err := client.RecordSermonView(t.Context(), sermon.ID)
	require.NoError(t, err)
	require.Equal(t, 1, viewed.ViewCount)

	fetched, err := client.GetSermon(t.Context(), sermon.ID)
	require.NoError(t, err)
	require.Equal(t, 1, fetched.ViewCount)
	require.ElementsMatch(t, []string{"grace", "salvation"}, fetched.Tags)

	// A hidden sermon is not in the anonymous archive.
	hidden := false
	members, err := admin.CreateSermon(t.Context(), churchsdk.SermonInput{
		Title:  "Members Only Teaching",
		Date:   time.Now(),
		Public: &hidden,
	})
	require.NoError(t, err)

	archive, err := client.ListSermons(t.Context())
	require.NoError(t, err)
	require.Len(t, archive, 1)

	_, err = client.GetSermon(t.Context(), members.ID)
	assertAPICode(t, err, "NOT_FOUND", "Anonymous fetch of hidden sermon")

	// Members see the full archive.
	member := registerMember(t, client, "grace@example.com", "Grace", "Kim")
	archive, err = member.ListSermons(t.Context())
	require.NoError(t, err)
	require.Len(t, archive, 2)
}

func TestSermonCreationRequiresStaff(t *testing.T) {
	baseURL, cleanup := setupChurchContainer(t)
	defer cleanup()

	client := churchsdk.NewClient(baseURL)
	member := registerMember(t, client, "grace@example.com", "Grace", "Kim")

	_, err := member.CreateSermon(t.Context(), churchsdk.SermonInput{
		Title: "Unauthorized Sermon",
		Date:  time.Now(),
	})
	assertAPICode(t, err, "INSUFFICIENT_PERMISSIONS", "Member archiving a sermon")
}
