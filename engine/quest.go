package engine

// QuestRule is the matching rule of one quest instance: either an action
// key or a category discriminator, plus a required count.
type QuestRule struct {
	ActionKey string `json:"action_key,omitempty"`
	Category  string `json:"category,omitempty"`
	Count     int    `json:"count,omitempty"`
}

// QuestEvent is the minimal event shape quest evaluation needs: the
// logged action's key and category, already joined by the caller.
type QuestEvent struct {
	ActionKey string
	Category  string
}

// QuestProgress reports how far a candidate event set gets toward a
// quest's target. Completion is Percent >= 100; the evaluator never
// touches quest status itself.
type QuestProgress struct {
	Current int `json:"current"`
	Target  int `json:"target"`
	Percent int `json:"percent"`
}

// EvaluateQuestProgress counts candidate events matching the rule's
// discriminator. The caller is responsible for windowing the events to
// the quest's active period (e.g. today's events for a daily quest) —
// keeping calendar logic out of here keeps the evaluator stateless.
// A missing or zero target defaults to 1.
func EvaluateQuestProgress(rule QuestRule, events []QuestEvent) QuestProgress {
	target := rule.Count
	if target <= 0 {
		target = 1
	}

	current := 0
	switch {
	case rule.ActionKey != "":
		for _, e := range events {
			if e.ActionKey == rule.ActionKey {
				current++
			}
		}
	case rule.Category != "":
		for _, e := range events {
			if e.Category == rule.Category {
				current++
			}
		}
	}

	percent := current * 100 / target
	if percent > 100 {
		percent = 100
	}

	return QuestProgress{Current: current, Target: target, Percent: percent}
}
