package pipeline

// Workflow stages reported through ProgressCallback.
const (
	StageFetch    = "fetch_posting"
	StageExtract  = "extract"
	StageSave     = "save"
	StageScore    = "score"
	StageSchedule = "schedule_interview"
	StageNotify   = "notify"
)

// ProgressEvent represents a progress update during a workflow call
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when workflow progress occurs
type ProgressCallback func(event ProgressEvent)

func (s *Service) emit(stage, message string, content any) {
	if s.onProgress != nil {
		s.onProgress(ProgressEvent{Stage: stage, Message: message, Content: content})
	}
}
