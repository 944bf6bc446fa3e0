package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveUserRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		req    SaveUserRequest
		fields []string
	}{
		{"valid", SaveUserRequest{Username: "jean", Email: "jean@exemple.com", BirthYear: 1999}, nil},
		{"missing pseudo and email", SaveUserRequest{}, []string{"pseudo", "email"}},
		{"bad email", SaveUserRequest{Username: "jean", Email: "pas-un-mail"}, []string{"email"}},
		{"birth year out of range", SaveUserRequest{Username: "jean", Email: "jean@exemple.com", BirthYear: 1800}, []string{"age"}},
		{"unknown status and role", SaveUserRequest{Username: "jean", Email: "jean@exemple.com", Status: "gone", Role: "root"}, []string{"status", "role"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			assert.Len(t, errs, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestSaveUserRequestApplyDefaults(t *testing.T) {
	req := SaveUserRequest{Username: " jean ", Email: "jean@exemple.com"}
	u := &User{ID: "keep", Warnings: 1}
	req.Apply(u)

	assert.Equal(t, "keep", u.ID)
	assert.Equal(t, "jean", u.Username)
	assert.Equal(t, UserStatusActive, u.Status)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, 1, u.Warnings)
}

func TestSaveUserRequestApplyKeepsStatusAndRole(t *testing.T) {
	u := &User{Status: UserStatusBanned, Role: RoleAdmin, BanReason: "spam"}

	(&SaveUserRequest{Username: "jean", Email: "jean@exemple.com", City: "Lyon"}).Apply(u)
	assert.Equal(t, UserStatusBanned, u.Status)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, "spam", u.BanReason)
	assert.Equal(t, "Lyon", u.City)

	(&SaveUserRequest{Username: "jean", Email: "jean@exemple.com", Status: UserStatusActive}).Apply(u)
	assert.Equal(t, UserStatusActive, u.Status)
	assert.Empty(t, u.BanReason)
}

func TestSaveWordRequest(t *testing.T) {
	assert.Len(t, (&SaveWordRequest{}).Validate(), 2)
	assert.Contains(t, (&SaveWordRequest{Text: "a", Definition: "b", Status: "archived"}).Validate(), "status")

	w := &Word{LikesCount: 3, CreatedBy: "u1"}
	(&SaveWordRequest{Text: " wesh ", Definition: "salut"}).Apply(w)
	assert.Equal(t, "wesh", w.Text)
	assert.Equal(t, WordStatusPending, w.Status)
	assert.Equal(t, 3, w.LikesCount)
	assert.Equal(t, "u1", w.CreatedBy)
}

func TestCastVoteRequestValidate(t *testing.T) {
	assert.Empty(t, (&CastVoteRequest{UserID: "u", WordID: "w", Value: VoteDislike}).Validate())
	assert.Contains(t, (&CastVoteRequest{UserID: "u", WordID: "w", Value: 2}).Validate(), "value")
}

func TestStatusValid(t *testing.T) {
	assert.True(t, UserStatusVisitor.Valid())
	assert.False(t, UserStatus("deleted").Valid())
	assert.True(t, CommentStatusFlagged.Valid())
	assert.True(t, RoleEditor.Valid())
}

func TestStaff(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsStaff())
	assert.True(t, (&User{Role: RoleEditor}).IsStaff())
	assert.False(t, (&User{Role: RoleUser}).IsStaff())
}
