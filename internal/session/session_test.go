package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/llm/llmtest"
	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const threeHooks = `HOOK 1:
Type: Curiosity Gap
Text: "Your coffee tastes bitter for one reason nobody mentions."

HOOK 2:
Type: Statistical Shock
Text: "Most home brewers waste half their beans without knowing it."

HOOK 3:
Type: Personal Story
Text: "I brewed bad coffee for ten years until a barista showed me this."`

func newManager(t *testing.T, fake *llmtest.Provider) (*Manager, store.Store) {
	t.Helper()
	st, err := store.Open("", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	r := router.New(fake.Completer(), config.DefaultConfig(), router.WithProjects(st))
	return NewManager(st, r, nil), st
}

func TestChatPersistsSelection(t *testing.T) {
	ctx := context.Background()
	fake := llmtest.New(threeHooks)
	m, st := newManager(t, fake)

	p := script.NewProject("coffee brewing", script.PlatformTikTok, "beginners")
	conv, err := m.Start(ctx, p)
	require.NoError(t, err)

	turn, err := m.Chat(ctx, conv.ID, router.Message{Text: "hook"})
	require.NoError(t, err)
	require.NoError(t, turn.Err)
	assert.Len(t, turn.Response.Options, 3)

	turn, err = m.Chat(ctx, conv.ID, router.Message{OptionSelected: 2})
	require.NoError(t, err)
	require.NoError(t, turn.Err)

	saved, err := st.Load(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.Hook)
	assert.True(t, saved.Hook.Finalized)
	assert.Equal(t, "Most home brewers waste half their beans without knowing it.", saved.Hook.Content)

	history, err := m.History(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, store.RoleUser, history[0].Role)
	assert.Equal(t, "hook", history[0].Content)
	assert.Equal(t, "2", history[2].Content)
	assert.Equal(t, store.RoleAssistant, history[3].Role)
}

func TestChatFailureKeepsStoredState(t *testing.T) {
	ctx := context.Background()
	fake := llmtest.New()
	fake.PushError(&llm.ProviderError{Kind: llm.KindAuth, Provider: "fake", Err: errors.New("bad key")})
	m, st := newManager(t, fake)

	p := script.NewProject("coffee brewing", script.PlatformTikTok, "beginners")
	conv, err := m.Start(ctx, p)
	require.NoError(t, err)
	before, err := st.Load(ctx, p.ID)
	require.NoError(t, err)

	turn, err := m.Chat(ctx, conv.ID, router.Message{Text: "hook"})
	require.NoError(t, err)
	require.Error(t, turn.Err)
	assert.Equal(t, llm.KindAuth, llm.KindOf(turn.Err))
	assert.Contains(t, turn.Response.Content, "API key")

	after, err := st.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, after.Hook)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)

	history, err := m.History(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2, "the apology is still recorded")
}

func TestChatUnknownConversation(t *testing.T) {
	m, _ := newManager(t, llmtest.New())
	_, err := m.Chat(context.Background(), "missing", router.Message{Text: "help"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestConcurrentConversationsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, llmtest.New())

	const conversations = 4
	const turns = 5
	ids := make([]string, conversations)
	for i := range ids {
		p := script.NewProject(fmt.Sprintf("topic %d", i), script.PlatformYouTube, "a")
		conv, err := m.Start(ctx, p)
		require.NoError(t, err)
		ids[i] = conv.ID
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		for j := 0; j < turns; j++ {
			id := id
			g.Go(func() error {
				turn, err := m.Chat(gctx, id, router.Message{Text: "status"})
				if err != nil {
					return err
				}
				return turn.Err
			})
		}
	}
	require.NoError(t, g.Wait())

	for _, id := range ids {
		history, err := m.History(ctx, id)
		require.NoError(t, err)
		require.Len(t, history, 2*turns)
		for i, msg := range history {
			want := store.RoleUser
			if i%2 == 1 {
				want = store.RoleAssistant
			}
			assert.Equal(t, want, msg.Role, "message %d of %s", i, id)
		}
	}
}

func TestDeleteConversation(t *testing.T) {
	ctx := context.Background()
	m, st := newManager(t, llmtest.New())

	p := script.NewProject("coffee", script.PlatformTikTok, "a")
	conv, err := m.Start(ctx, p)
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, conv.ID))
	_, err = st.Load(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	convs, err := m.Conversations(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, convs)
}
