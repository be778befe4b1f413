package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectNetworkFromURL(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		url  string
		want Network
	}{
		{"https://www.tiktok.com/@creator/video/7300000000000000001", NetworkTikTok},
		{"https://vm.tiktok.com/ZGeSomeShare/", NetworkTikTok},
		{"https://www.instagram.com/reel/Cxyz123/", NetworkInstagram},
		{"https://instagram.com/p/Cxyz123/", NetworkInstagram},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", NetworkYouTube},
		{"https://youtu.be/dQw4w9WgXcQ", NetworkYouTube},
		{"https://www.youtube.com/shorts/abc123", NetworkYouTube},

		// Unsupported or malformed inputs classify as empty
		{"https://www.twitch.tv/somestream", Network("")},
		{"https://example.com/video", Network("")},
		{"not a url at all", Network("")},
		{"", Network("")},
		{"://missing-scheme", Network("")},
	}

	for _, tc := range cases {
		require.Equal(tc.want, DetectNetworkFromURL(tc.url), "url: %s", tc.url)
	}
}
