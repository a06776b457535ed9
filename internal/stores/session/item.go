package session

import "github.com/nlpodyssey/openai-agents-go/memory"

// callIDOfCall returns the call id when item is a tool call
func callIDOfCall(item memory.TResponseInputItem) (string, bool) {
	switch {
	case item.OfFunctionCall != nil:
		return item.OfFunctionCall.CallID, true
	case item.OfLocalShellCall != nil:
		return item.OfLocalShellCall.CallID, true
	case item.OfCustomToolCall != nil:
		return item.OfCustomToolCall.CallID, true
	default:
		return "", false
	}
}

// callIDOfOutput returns the call id when item is a tool call output
func callIDOfOutput(item memory.TResponseInputItem) (string, bool) {
	switch {
	case item.OfFunctionCallOutput != nil:
		return item.OfFunctionCallOutput.CallID, true
	case item.OfComputerCallOutput != nil:
		return item.OfComputerCallOutput.CallID, true
	case item.OfLocalShellCallOutput != nil:
		return item.OfLocalShellCallOutput.ID, true
	case item.OfCustomToolCallOutput != nil:
		return item.OfCustomToolCallOutput.CallID, true
	default:
		return "", false
	}
}

// pairToolCalls moves each tool call output directly behind its call
func pairToolCalls(items []memory.TResponseInputItem) {
	for i := 1; i < len(items); i++ {
		prevID, prevIsCall := callIDOfCall(items[i-1])
		currID, currIsOutput := callIDOfOutput(items[i])

		if !prevIsCall || (currIsOutput && prevID == currID) {
			continue
		}

		for j := i + 1; j < len(items); j++ {
			nextID, nextIsOutput := callIDOfOutput(items[j])
			if nextIsOutput && nextID == prevID {
				items[i], items[j] = items[j], items[i]
				break
			}
		}
	}
}

// trimOrphanOutputs drops leading outputs whose call was cut off by a limit
func trimOrphanOutputs(items []memory.TResponseInputItem) []memory.TResponseInputItem {
	for len(items) > 0 {
		if _, isOutput := callIDOfOutput(items[0]); !isOutput {
			break
		}
		items = items[1:]
	}
	return items
}
