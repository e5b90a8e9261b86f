package domain

import "time"

type TaskType string

const (
	TaskWater     TaskType = "Water"
	TaskFertilize TaskType = "Fertilize"
	TaskMist      TaskType = "Mist"
	TaskPrune     TaskType = "Prune"
)

func ParseTaskType(s string) (TaskType, error) {
	switch t := TaskType(s); t {
	case TaskWater, TaskFertilize, TaskMist, TaskPrune:
		return t, nil
	}
	return "", enumErr("task type", s)
}

type CareTask struct {
	ID        string
	PlantName string
	Type      TaskType
	Due       time.Time
	Completed bool
	Image     string
}

type BlogPost struct {
	ID       string
	Title    string
	Category string
	ReadTime string
	Image    string
	Excerpt  string
	Date     string
}

type (
	QuizQuestion struct {
		ID       int
		Question string
		Options  []QuizOption
	}

	QuizOption struct {
		Label string
		Value string
	}

	QuizResult struct {
		Persona     string
		Recommended []Product
	}
)
