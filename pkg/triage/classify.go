// Package triage classifies the outcome of a single agent run from its raw
// log text.
//
// The logs come from a tool-calling agent harness answering a demographic
// question; the marker literals below are the textual signatures that
// harness emits (several of them in Chinese). Classification is a pure
// function: plain substring checks, evaluated top to bottom, first match
// wins, exactly one category per log.
package triage

import "strings"

// Marker literals emitted by the agent harness. These are the parsing
// contract for log.txt, not display text.
const (
	// markerModelAnswer delimits each observed model answer section.
	markerModelAnswer = "--- google模型回答 ---"
	// markerFinalReply delimits the start of a final reply section. The
	// text after its last occurrence is the run's final reply.
	markerFinalReply = "--- 最终答复 ---"

	// A complete final reply covers both expected facets of the answer
	// (male and female breakdowns) and repeats the expected numeric answer.
	tokenFacetA   = "男性"
	tokenFacetB   = "女性"
	tokenNumeric  = "23"
	numericRepeat = 2

	// markerMalformedCall is emitted when the model returns an unparseable
	// tool call.
	markerMalformedCall = "MALFORMED_FUNCTION_CALL"
	// markerModelCallFailure is emitted when invoking the model itself failed.
	markerModelCallFailure = "N/A (调用失败)"
	// markerToolInvocation appears whenever the model attempted a tool call.
	markerToolInvocation = "functionCall"

	// Refusal markers: "sorry" plus "unable" means the model declined to
	// reason at all; "I cannot" means it reasoned its way to giving up.
	markerRefusal   = "抱歉"
	markerInability = "无法"
	markerICannot   = "我无法"
)

// Category is the outcome assigned to one run. The taxonomy is a partition:
// every log maps to exactly one category.
type Category int

const (
	// TrulyCorrect: at least two model answers observed, a complete final
	// reply, and the numeric answer repeated as expected.
	TrulyCorrect Category = iota
	// LogicError: the final reply is structurally complete but the numeric
	// answer is wrong or under-repeated.
	LogicError
	// MalformedCall: the model returned a malformed tool call.
	MalformedCall
	// ModelCallFailure: invoking the model failed outright.
	ModelCallFailure
	// RefusalToReason: no tool call was attempted and the model refused.
	RefusalToReason
	// NoStepSummary: no tool call was attempted and no final reply was
	// produced.
	NoStepSummary
	// PlanAsFinalAnswer: no tool call was attempted; the model emitted its
	// plan as if it were the answer.
	PlanAsFinalAnswer
	// EmptyReplyAfterToolCall: a tool call happened but the run ended with
	// an empty final reply.
	EmptyReplyAfterToolCall
	// ReasonedImpossible: a tool call happened and the model concluded the
	// question could not be answered.
	ReasonedImpossible
	// MissingFunctionCallInfo: a tool call happened and some text was
	// produced, but it fits no more specific bucket. Also the fallback for
	// runs whose log could not be read.
	MissingFunctionCallInfo
)

// Categories lists every category in report order.
var Categories = []Category{
	TrulyCorrect,
	LogicError,
	MalformedCall,
	ModelCallFailure,
	RefusalToReason,
	NoStepSummary,
	PlanAsFinalAnswer,
	EmptyReplyAfterToolCall,
	ReasonedImpossible,
	MissingFunctionCallInfo,
}

var categoryNames = map[Category]string{
	TrulyCorrect:            "truly_correct",
	LogicError:              "logic_error",
	MalformedCall:           "malformed_call",
	ModelCallFailure:        "model_call_failure",
	RefusalToReason:         "refusal_to_reason",
	NoStepSummary:           "no_step_summary",
	PlanAsFinalAnswer:       "plan_as_final_answer",
	EmptyReplyAfterToolCall: "empty_reply_after_tool_call",
	ReasonedImpossible:      "reasoned_impossible",
	MissingFunctionCallInfo: "missing_function_call_info",
}

// String returns the stable snake_case name used in JSON output.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Correct reports whether the category counts as a reply that was obtained,
// correct or not.
func (c Category) Correct() bool {
	return c == TrulyCorrect || c == LogicError
}

// FinalReply extracts the final reply from logText: the text after the last
// final-reply delimiter, trimmed. Returns "" when the delimiter never occurs.
func FinalReply(logText string) string {
	if !strings.Contains(logText, markerFinalReply) {
		return ""
	}
	parts := strings.Split(logText, markerFinalReply)
	return strings.TrimSpace(parts[len(parts)-1])
}

// Classify assigns exactly one Category to the given log text and returns
// the extracted final reply alongside it. The branch ordering below is the
// contract: earlier checks shadow later ones.
func Classify(logText string) (Category, string) {
	modelAnswerCount := strings.Count(logText, markerModelAnswer)
	finalReply := FinalReply(logText)
	finalReplyValid := finalReply != "" &&
		strings.Contains(finalReply, tokenFacetA) &&
		strings.Contains(finalReply, tokenFacetB)

	if modelAnswerCount >= 2 && finalReplyValid {
		if strings.Count(finalReply, tokenNumeric) >= numericRepeat {
			return TrulyCorrect, finalReply
		}
		return LogicError, finalReply
	}

	switch {
	case strings.Contains(logText, markerMalformedCall):
		return MalformedCall, finalReply
	case strings.Contains(logText, markerModelCallFailure):
		return ModelCallFailure, finalReply
	case !strings.Contains(logText, markerToolInvocation):
		switch {
		case strings.Contains(logText, markerRefusal) && strings.Contains(logText, markerInability):
			return RefusalToReason, finalReply
		case finalReply == "":
			return NoStepSummary, finalReply
		default:
			return PlanAsFinalAnswer, finalReply
		}
	default:
		switch {
		case finalReply == "":
			return EmptyReplyAfterToolCall, finalReply
		case strings.Contains(logText, markerICannot):
			return ReasonedImpossible, finalReply
		default:
			return MissingFunctionCallInfo, finalReply
		}
	}
}
