package form

import (
	"sync"
	"testing"
	"time"

	"techexam-cli/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestRecompute(t *testing.T) {
	tests := []struct {
		name              string
		username          *string
		password          *string
		wantUsernameError *string
		wantPasswordError *string
		wantCanSubmit     bool
	}{
		{
			name: "untouched form",
		},
		{
			name:              "short password",
			username:          ptr("a@b.com"),
			password:          ptr("short"),
			wantPasswordError: ptr("Needs at least eight characters"),
		},
		{
			name:              "invalid email",
			username:          ptr("not-an-email"),
			password:          ptr("Passw0rd1"),
			wantUsernameError: ptr(validator.InvalidEmailMessage),
		},
		{
			name:          "accepted identity",
			username:      ptr("User@yahoo.co"),
			password:      ptr("P@ssword1"),
			wantCanSubmit: true,
		},
		{
			name:     "valid username only",
			username: ptr("a@b.com"),
		},
		{
			name:              "empty username is present and invalid",
			username:          ptr(""),
			password:          ptr("Passw0rd1"),
			wantUsernameError: ptr(validator.InvalidEmailMessage),
		},
		{
			name:              "missing digit",
			username:          ptr("a@b.com"),
			password:          ptr("Password"),
			wantPasswordError: ptr("Needs at least one number"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recompute(tt.username, tt.password, NoField)

			assert.Equal(t, tt.wantUsernameError, got.UsernameError)
			assert.Equal(t, tt.wantPasswordError, got.PasswordError)
			assert.Equal(t, tt.wantCanSubmit, got.CanSubmit)
		})
	}
}

func TestRecompute_FocusDoesNotChangeOutcome(t *testing.T) {
	for _, f := range []Field{NoField, UsernameField, PasswordField} {
		got := Recompute(ptr("a@b.com"), ptr("nope"), f)
		assert.Equal(t, Recompute(ptr("a@b.com"), ptr("nope"), NoField), got, "focus %s", f)
	}
}

func TestState_PublishesOnEveryChange(t *testing.T) {
	// Arrange
	s := NewState()
	var canSubmit []bool
	var usernameErrors []*string
	s.CanSubmit().Subscribe(func(v bool) { canSubmit = append(canSubmit, v) })
	s.UsernameError().Subscribe(func(v *string) { usernameErrors = append(usernameErrors, v) })

	// Act
	s.SetUsername("User@yahoo.co")
	s.SetPassword("P@ssword1")
	s.SetFocus(PasswordField)

	// Assert
	assert.Equal(t, []bool{false, false, true, true}, canSubmit)
	require.Len(t, usernameErrors, 4)
	for _, e := range usernameErrors {
		assert.Nil(t, e)
	}
	assert.True(t, s.CanSubmit().Value())
	assert.Equal(t, PasswordField, s.Focus())
}

func TestState_NoHiddenHistory(t *testing.T) {
	s := NewState()
	s.SetUsername("bad")
	s.SetPassword("x")
	s.SetUsername("a@b.com")
	s.SetPassword("Passw0rd1")

	fresh := Recompute(ptr("a@b.com"), ptr("Passw0rd1"), NoField)

	assert.Equal(t, fresh, s.Result())
	assert.Nil(t, s.UsernameError().Value())
	assert.Nil(t, s.PasswordError().Value())
}

func TestState_ErrorsTrackCurrentValue(t *testing.T) {
	s := NewState()

	s.SetPassword("password1")
	require.NotNil(t, s.PasswordError().Value())
	assert.Equal(t, "Needs at least one uppercase", *s.PasswordError().Value())

	s.SetPassword("PASSWORD1")
	assert.Equal(t, "Needs at least one lowercase", *s.PasswordError().Value())

	res := s.Reset()
	assert.Nil(t, res.PasswordError)
	assert.Nil(t, s.PasswordError().Value())
	assert.False(t, s.CanSubmit().Value())
}

func TestStream_CancelStopsDelivery(t *testing.T) {
	st := NewStream(0)
	var got []int
	cancel := st.Subscribe(func(v int) { got = append(got, v) })

	st.publish(1)
	cancel()
	cancel()
	st.publish(2)

	assert.Equal(t, []int{0, 1}, got)
	assert.Equal(t, 2, st.Value())
}

func TestStream_SubscriberMayReadState(t *testing.T) {
	s := NewState()
	var seen []Result
	s.CanSubmit().Subscribe(func(bool) { seen = append(seen, s.Result()) })

	s.SetUsername("a@b.com")

	require.Len(t, seen, 2)
	assert.Equal(t, Recompute(ptr("a@b.com"), nil, NoField), seen[1])
}

func TestState_ConcurrentSettersEndOnLastWrite(t *testing.T) {
	s := NewState()
	s.SetPassword("Passw0rd1")

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	s.UsernameError().Subscribe(func(v *string) {
		if v != nil {
			once.Do(func() {
				close(started)
				<-release
			})
		}
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.SetUsername("not-an-email")
	}()
	<-started
	go func() {
		defer wg.Done()
		s.SetUsername("a@b.com")
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, s.Result().CanSubmit, s.CanSubmit().Value())
	assert.True(t, s.CanSubmit().Value(), "the later valid username must win")
	assert.Nil(t, s.UsernameError().Value())
}
