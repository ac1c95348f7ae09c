package editor

import (
	model "noders-content-service/internal/domain/models"
	"noders-content-service/internal/domain/rules"
)

// Reduce returns the state that results from applying action to state. It
// never mutates its input.
func Reduce(state State, action Action) State {
	if action == nil {
		return state
	}
	return action.apply(state.clone())
}

func (a Loaded) apply(s State) State {
	s.Blocks = rules.Reindex(rules.SortedByOrder(a.Blocks))
	s.Stale = false
	return s
}

func (a OpenForm) apply(s State) State {
	s.Form = &Form{Type: a.Type, Draft: a.Draft}
	return s
}

func (CloseForm) apply(s State) State {
	s.Form = nil
	return s
}

func (a ShowNotice) apply(s State) State {
	n := a.Notice
	s.Notice = &n
	return s
}

func (DismissNotice) apply(s State) State {
	s.Notice = nil
	return s
}

// AddPending re-checks the append against the state it lands on, so a
// concurrent add that got there first can not push the collection past a
// ceiling or put two text blocks next to each other.
func (a AddPending) apply(s State) State {
	block := a.Block
	if err := rules.ValidateAppend(s.Blocks, block.Type, block.Content); err != nil {
		s.Notice = &Notice{Level: NoticeError, Message: err.Error()}
		return s
	}
	block.OrderIndex = len(s.Blocks)
	s.Blocks = append(s.Blocks, block)
	s.Form = nil
	return s
}

func (a AddConfirmed) apply(s State) State {
	_, i, ok := s.Find(a.TempID)
	if !ok {
		return s
	}
	block := a.Block
	block.OrderIndex = i
	s.Blocks[i] = block
	s.Notice = &Notice{Level: NoticeInfo, Message: "Block added."}
	return s
}

func (a AddFailed) apply(s State) State {
	if _, i, ok := s.Find(a.TempID); ok {
		s.Blocks = rules.Reindex(append(s.Blocks[:i], s.Blocks[i+1:]...))
	}
	s.Form = &Form{Type: a.Type, Draft: a.Draft}
	n := a.Notice
	s.Notice = &n
	return s
}

func (a UpdatePending) apply(s State) State {
	if _, i, ok := s.Find(a.BlockID); ok {
		s.Blocks[i].Content = a.Content
		s.Blocks[i].UpdatedAt = a.At
	}
	return s
}

func (a UpdateConfirmed) apply(s State) State {
	if _, i, ok := s.Find(a.Block.ID); ok {
		block := a.Block
		block.OrderIndex = i
		s.Blocks[i] = block
	}
	if a.Notice != nil {
		n := *a.Notice
		s.Notice = &n
	}
	return s
}

func (a UpdateFailed) apply(s State) State {
	if _, i, ok := s.Find(a.Original.ID); ok {
		original := a.Original
		original.OrderIndex = i
		s.Blocks[i] = original
	}
	n := a.Notice
	s.Notice = &n
	return s
}

func (a DeletePending) apply(s State) State {
	if _, i, ok := s.Find(a.BlockID); ok {
		s.Blocks = rules.Reindex(append(s.Blocks[:i], s.Blocks[i+1:]...))
	}
	return s
}

func (a DeleteConfirmed) apply(s State) State {
	if _, i, ok := s.Find(a.BlockID); ok {
		s.Blocks = rules.Reindex(append(s.Blocks[:i], s.Blocks[i+1:]...))
	}
	if a.Notice != nil {
		n := *a.Notice
		s.Notice = &n
	}
	return s
}

func (a DeleteFailed) apply(s State) State {
	if _, _, ok := s.Find(a.Block.ID); !ok {
		index := min(max(a.Index, 0), len(s.Blocks))
		blocks := make([]model.Block, 0, len(s.Blocks)+1)
		blocks = append(blocks, s.Blocks[:index]...)
		blocks = append(blocks, a.Block)
		blocks = append(blocks, s.Blocks[index:]...)
		s.Blocks = rules.Reindex(blocks)
		// A block confirmed while the delete was in flight can end up next
		// to the restored one.
		if rules.ValidateCollection(s.Blocks) != nil {
			s.Stale = true
		}
	}
	n := a.Notice
	s.Notice = &n
	return s
}
