package forms_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danhigham/contestdash/internal/forms"
)

func TestContestForm_Validate(t *testing.T) {
	end, err := forms.ContestForm{Name: " Winter drop ", EndDate: "2026-12-31", Prize: "NFT gift"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestContestForm_Incomplete(t *testing.T) {
	_, err := forms.ContestForm{Name: "x", EndDate: "  ", Prize: "y"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, forms.ErrIncomplete))

	var ve *forms.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "all fields must be filled", ve.Alert)
	assert.Contains(t, ve.Fields, "EndDate")
}

func TestContestForm_BadDate(t *testing.T) {
	_, err := forms.ContestForm{Name: "x", EndDate: "31.12.2026", Prize: "y"}.Validate()
	require.Error(t, err)
	assert.False(t, errors.Is(err, forms.ErrIncomplete))
}

func TestAdminForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      forms.AdminForm
		wantID    int64
		wantAlert string
	}{
		{
			"valid with optional chat missing",
			forms.AdminForm{TelegramID: "123", Username: "@alice", ChannelLink: "t.me/chan"},
			123,
			"",
		},
		{
			"missing channel",
			forms.AdminForm{TelegramID: "123", Username: "alice"},
			0,
			"fill in ID, username and channel link",
		},
		{
			"non numeric id",
			forms.AdminForm{TelegramID: "abc", Username: "alice", ChannelLink: "t.me/chan"},
			0,
			"invalid TelegramID",
		},
		{
			"zero id",
			forms.AdminForm{TelegramID: "0", Username: "alice", ChannelLink: "t.me/chan"},
			0,
			"ID must be a positive integer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.form.Validate()
			if tt.wantAlert == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantAlert, err.Error())
		})
	}
}

func TestAdminForm_TrimsAt(t *testing.T) {
	f := forms.AdminForm{Username: " @bob "}.Trimmed()
	assert.Equal(t, "bob", f.Username)
}
