package wizard

import "github.com/stackinit/stackinit/internal/core/project"

// Question IDs.
const (
	QuestionFramework = "framework"
	QuestionDatabase  = "database"
)

var optionDescriptions = map[string]string{
	string(project.FrameworkSpringBoot): "Java, Maven, Spring Initializr",
	string(project.FrameworkNestJS):     "TypeScript, Nest CLI",
	string(project.DatabaseMySQL):       "relational, JPA / TypeORM",
	string(project.DatabaseMongoDB):     "document store, Spring Data / Mongoose",
}

// DefaultQuestions returns the framework and database questions in prompt order.
// A question is skipped when its answer is already present in the result,
// which lets command-line flags pre-answer either one.
func DefaultQuestions() []Question {
	frameworks := make([]Option, 0, len(project.Frameworks))
	for _, fw := range project.Frameworks {
		frameworks = append(frameworks, Option{
			Label: fw.DisplayName(),
			Value: fw.String(),
			Desc:  optionDescriptions[fw.String()],
		})
	}

	databases := make([]Option, 0, len(project.Databases))
	for _, db := range project.Databases {
		databases = append(databases, Option{
			Label: db.DisplayName(),
			Value: db.String(),
			Desc:  optionDescriptions[db.String()],
		})
	}

	return []Question{
		{
			ID:          QuestionFramework,
			Title:       "Select a framework",
			Description: "The generator used to create the project skeleton.",
			// Default option must be first to avoid the huh v0.8.0 viewport YOffset bug.
			Options:   frameworks,
			Default:   frameworks[0].Value,
			Condition: func(r *WizardResult) bool { return r.Framework == "" },
		},
		{
			ID:          QuestionDatabase,
			Title:       "Select a database",
			Description: "Driver dependencies and connection settings are added for it.",
			Options:     databases,
			Default:     databases[0].Value,
			Condition:   func(r *WizardResult) bool { return r.Database == "" },
		},
	}
}

// FilteredQuestions returns questions filtered by their conditions.
// Questions whose conditions return false are excluded.
func FilteredQuestions(questions []Question, result *WizardResult) []Question {
	filtered := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.Condition == nil || q.Condition(result) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// QuestionByID finds a question by its ID.
func QuestionByID(questions []Question, id string) *Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}
