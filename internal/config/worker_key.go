package config

type WorkerKeyStruct struct {
	PersistAnswersQueue   string
	PersistSummariesQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistAnswersQueue:   "persist_answers_queue",
	PersistSummariesQueue: "persist_summaries_queue",
}
