package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeMessage(t *testing.T) {
	from := UserCompact{FullName: "Priya"}

	tests := []struct {
		name         string
		notification ExpandedNotification
		want         string
	}{
		{
			name: "like",
			notification: ExpandedNotification{
				Notification: Notification{Type: NotificationLike},
				FromUser:     from,
				PostCaption:  "Sunset",
			},
			want: `Priya liked your post "Sunset".`,
		},
		{
			name: "comment",
			notification: ExpandedNotification{
				Notification: Notification{Type: NotificationComment},
				FromUser:     from,
				PostCaption:  "Sunset",
			},
			want: `Priya commented on your post "Sunset".`,
		},
		{
			name: "follow",
			notification: ExpandedNotification{
				Notification: Notification{Type: NotificationFollow},
				FromUser:     from,
			},
			want: "Priya started following you.",
		},
		{
			name: "unfollow",
			notification: ExpandedNotification{
				Notification: Notification{Type: NotificationUnfollow},
				FromUser:     from,
			},
			want: "Priya unfollowed you.",
		},
		{
			name: "warning uses stored message",
			notification: ExpandedNotification{
				Notification: Notification{Type: NotificationWarning, Message: "Mind the rules."},
			},
			want: "Mind the rules.",
		},
		{
			name: "warning without message falls back",
			notification: ExpandedNotification{
				Notification: Notification{Type: NotificationWarning},
			},
			want: "Your post contains inappropriate content.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.notification.ComposeMessage())
		})
	}
}
