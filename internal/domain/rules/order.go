package rules

import (
	"sort"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
)

// SortedByOrder returns a copy of blocks sorted by OrderIndex.
func SortedByOrder(blocks []model.Block) []model.Block {
	sorted := make([]model.Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})
	return sorted
}

// Reindex assigns contiguous order indices 0..n-1 following slice order.
func Reindex(blocks []model.Block) []model.Block {
	for i := range blocks {
		blocks[i].OrderIndex = i
	}
	return blocks
}

// ValidateCollection reports the first collection rule that blocks breaks.
func ValidateCollection(blocks []model.Block) error {
	if len(blocks) > model.MaxBlocksPerPost {
		return violation(RuleBlockLimit, custom_errors.ErrBlockLimitReached)
	}
	if model.CountBlocks(blocks).Images > model.MaxImageBlocksPerPost {
		return violation(RuleImageLimit, custom_errors.ErrImageLimitReached)
	}
	sorted := SortedByOrder(blocks)
	for i, b := range sorted {
		if b.OrderIndex != i {
			return custom_errors.ErrOrderIndexGap
		}
		if i > 0 && b.Type == model.BlockTypeText && sorted[i-1].Type == model.BlockTypeText {
			return violation(RuleConsecutiveText, custom_errors.ErrConsecutiveTextBlocks)
		}
	}
	return nil
}
