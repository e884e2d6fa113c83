package services

import "github.com/pairconnect/pair-connect-api/internal/models"

// stackCompatibility is the single compatibility primitive shared by the
// session validator and both suggestion engines. The relation is asymmetric
// and deliberately spelled out rather than derived: Fullstack pairs with
// everything, Frontend and Backend each pair with Fullstack but never with
// each other.
var stackCompatibility = map[models.Stack][]models.Stack{
	models.StackFullstack: {models.StackFullstack, models.StackFrontend, models.StackBackend},
	models.StackFrontend:  {models.StackFrontend, models.StackFullstack},
	models.StackBackend:   {models.StackBackend, models.StackFullstack},
}

// CompatibleStacks returns the stack values compatible with the given stack.
// A nil or unknown stack yields an empty set.
func CompatibleStacks(stack *models.Stack) []models.Stack {
	if stack == nil {
		return nil
	}
	return stackCompatibility[*stack]
}
