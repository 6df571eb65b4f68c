package mqtt

import "fmt"

func TopicMoodClassified(prefix string) string {
	return fmt.Sprintf("%s/mood/classified", prefix)
}
