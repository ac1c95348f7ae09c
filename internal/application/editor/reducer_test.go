package editor

import (
	"fmt"
	"testing"

	model "noders-content-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_DoesNotMutateInput(t *testing.T) {
	state := State{
		PostID: "post-1",
		Blocks: []model.Block{quoteBlock("a", 0, "one"), quoteBlock("b", 1, "two"), quoteBlock("c", 2, "three")},
	}
	before := state.clone()

	next := Reduce(state, DeletePending{BlockID: "a"})

	assert.Equal(t, before, state)
	require.Len(t, next.Blocks, 2)
	assert.Equal(t, "b", next.Blocks[0].ID)
	assert.Equal(t, 0, next.Blocks[0].OrderIndex)
}

func TestReduce_StaleConfirmationsAreIgnored(t *testing.T) {
	state := State{Blocks: []model.Block{quoteBlock("a", 0, "one")}}

	next := Reduce(state, AddConfirmed{TempID: "temp-gone", Block: quoteBlock("srv-9", 0, "x")})
	assert.Equal(t, state.Blocks, next.Blocks)

	next = Reduce(state, UpdateConfirmed{Block: quoteBlock("missing", 0, "x")})
	assert.Equal(t, state.Blocks, next.Blocks)
}

func TestReduce_DeleteFailedClampsIndexAndSkipsDuplicates(t *testing.T) {
	state := State{Blocks: []model.Block{quoteBlock("a", 0, "one")}}

	next := Reduce(state, DeleteFailed{Block: quoteBlock("z", 7, "back"), Index: 7, Notice: Notice{Level: NoticeError, Message: "x"}})
	require.Len(t, next.Blocks, 2)
	assert.Equal(t, "z", next.Blocks[1].ID)
	assert.Equal(t, 1, next.Blocks[1].OrderIndex)

	again := Reduce(next, DeleteFailed{Block: quoteBlock("z", 1, "back"), Index: 0})
	assert.Len(t, again.Blocks, 2)
}

func TestReduce_FormSlot(t *testing.T) {
	state := Reduce(State{}, OpenForm{Type: model.BlockTypeQuote})
	state = Reduce(state, OpenForm{Type: model.BlockTypeImage})
	require.NotNil(t, state.Form)
	assert.Equal(t, model.BlockTypeImage, state.Form.Type)

	state = Reduce(state, CloseForm{})
	assert.Nil(t, state.Form)

	state = Reduce(state, AddFailed{TempID: "temp-1", Type: model.BlockTypeQuote, Draft: model.QuoteContent{Quote: "q"}})
	require.NotNil(t, state.Form)
	assert.Equal(t, model.QuoteContent{Quote: "q"}, state.Form.Draft)
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	store := NewStore("post-1")
	var seen []int
	unsubscribe := store.Subscribe(func(s State) { seen = append(seen, len(s.Blocks)) })

	store.Dispatch(Loaded{Blocks: []model.Block{quoteBlock("a", 0, "one")}})
	store.Dispatch(AddPending{Block: quoteBlock("temp-1", 0, "two")})
	unsubscribe()
	store.Dispatch(DeletePending{BlockID: "a"})

	assert.Equal(t, []int{1, 2}, seen)
	assert.Len(t, store.Snapshot().Blocks, 1)
}

func TestReduce_DeleteFailedMarksStaleWhenTextBlocksMeet(t *testing.T) {
	state := State{Blocks: []model.Block{imageBlock("i0", 0), textBlock("srv-1", 1, "added meanwhile")}}

	next := Reduce(state, DeleteFailed{Block: textBlock("t1", 1, "restored"), Index: 1, Notice: Notice{Level: NoticeError, Message: "x"}})
	require.Len(t, next.Blocks, 3)
	assert.True(t, next.Stale)

	reloaded := Reduce(next, Loaded{Blocks: []model.Block{imageBlock("i0", 0), textBlock("t1", 1, "restored")}})
	assert.False(t, reloaded.Stale)
}

func TestReduce_AddPendingRechecksAgainstCurrentState(t *testing.T) {
	t.Run("ceiling", func(t *testing.T) {
		blocks := make([]model.Block, 0, model.MaxBlocksPerPost)
		for i := 0; i < model.MaxBlocksPerPost; i++ {
			blocks = append(blocks, quoteBlock(fmt.Sprintf("q%d", i), i, "q"))
		}
		state := State{Blocks: blocks, Form: &Form{Type: model.BlockTypeQuote}}

		next := Reduce(state, AddPending{Block: quoteBlock("temp-1", 15, "late")})
		assert.Len(t, next.Blocks, model.MaxBlocksPerPost)
		_, _, ok := next.Find("temp-1")
		assert.False(t, ok)
		require.NotNil(t, next.Notice)
		assert.Equal(t, NoticeError, next.Notice.Level)
		assert.NotNil(t, next.Form)
	})

	t.Run("consecutive text", func(t *testing.T) {
		state := State{Blocks: []model.Block{quoteBlock("q0", 0, "q"), textBlock("temp-a", 1, "first add")}}

		next := Reduce(state, AddPending{Block: textBlock("temp-b", 2, "second add")})
		assert.Len(t, next.Blocks, 2)
		require.NotNil(t, next.Notice)
		assert.Equal(t, "two text blocks cannot be adjacent", next.Notice.Message)
	})
}
