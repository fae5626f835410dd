package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/example/vocabtrainer/internal/database"
	"github.com/example/vocabtrainer/internal/notify"
	"github.com/example/vocabtrainer/internal/quiz"
	"github.com/example/vocabtrainer/internal/scheduler"
	"github.com/example/vocabtrainer/internal/spaced_repetition"
	"github.com/example/vocabtrainer/internal/vocabulary"
	"github.com/example/vocabtrainer/pkg/models"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(os.Args[2:])
	case "learn":
		err = runLearn(os.Args[2:])
	case "quiz":
		err = runQuiz(os.Args[2:])
	case "review":
		err = runReview(os.Args[2:])
	case "stats":
		err = runStats()
	case "remind":
		err = runRemind()
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: vocabtrainer <command> [flags]

Commands:
  import   import vocabulary from an Excel or CSV file into topic files
  learn    study a topic's words and mark them learned
  quiz     run a multiple-choice quiz for one topic or all topics
  review   run a spaced-repetition review session
  stats    show overall learning statistics
  remind   start the background due-word reminder (Telegram)`)
}

// dataDir returns the directory holding the per-topic JSON files
func dataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return "data/topics"
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "Excel or CSV file to import")
	sheet := fs.String("sheet", "Sheet1", "sheet name for Excel files")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("missing -file")
	}

	config := vocabulary.DefaultImportConfig()
	config.FilePath = *file
	config.SheetName = *sheet

	result, err := vocabulary.ImportVocabulary(config, dataDir())
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d rows: %d imported, %d skipped, %d topics written\n",
		result.TotalProcessed, result.Imported, result.Skipped, result.TopicsWritten)
	for _, e := range result.Errors {
		fmt.Println("  " + e)
	}
	return nil
}

func runLearn(args []string) error {
	fs := flag.NewFlagSet("learn", flag.ExitOnError)
	topic := fs.String("topic", "", "topic to study")
	fs.Parse(args)

	if *topic == "" {
		return fmt.Errorf("missing -topic")
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close()

	source := vocabulary.NewDirSource(dataDir())
	entries, err := source.Load(*topic)
	if err != nil || len(entries) == 0 {
		fmt.Printf("No vocabulary found for topic %q\n", *topic)
		return nil
	}

	store := database.NewProgressStore()
	if err := store.InitializeTopic(*topic, len(entries)); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for i, entry := range entries {
		fmt.Printf("\n[%d/%d] %s", i+1, len(entries), entry.English)
		if entry.Pronunciation != "" {
			fmt.Printf("  %s", entry.Pronunciation)
		}
		fmt.Printf("\n      %s\n", entry.Vietnamese)
		fmt.Print("Mark as learned? [y/N/q] ")

		answer := readLine(reader)
		if answer == "q" {
			break
		}
		if answer == "y" {
			if err := store.MarkWordLearned(*topic, entry); err != nil {
				return err
			}
		}
	}

	progress, err := store.GetTopicProgress(*topic)
	if err != nil {
		return err
	}
	fmt.Printf("\nTopic %q: %d/%d words learned (%d%%)\n",
		*topic, progress.LearnedWords, progress.TotalWords, progress.Percentage)
	return nil
}

func runQuiz(args []string) error {
	fs := flag.NewFlagSet("quiz", flag.ExitOnError)
	topic := fs.String("topic", "", "topic to quiz, or 'all' for every topic")
	kind := fs.String("type", "mixed", "question type: translation, reverse_translation, fill_blank, pronunciation, mixed")
	count := fs.Int("count", 10, "number of questions")
	fresh := fs.Bool("fresh", false, "clear the question history before composing")
	fs.Parse(args)

	if *topic == "" {
		return fmt.Errorf("missing -topic")
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close()

	source := vocabulary.NewDirSource(dataDir())
	composer := quiz.NewComposer(source, nil, nil)
	if *fresh {
		composer.ClearHistory(*topic)
	}

	store := database.NewProgressStore()
	var questions []models.Question
	if *topic == quiz.AllTopicsKey {
		questions = composer.ComposeAllTopics(models.QuestionKind(*kind), *count)
	} else {
		entries, err := source.Load(*topic)
		if err == nil && len(entries) > 0 {
			if err := store.InitializeTopic(*topic, len(entries)); err != nil {
				return err
			}
		}
		questions = composer.ComposeTopic(*topic, models.QuestionKind(*kind), *count)
	}
	if len(questions) == 0 {
		fmt.Printf("No questions available for topic %q\n", *topic)
		return nil
	}

	score := playQuiz(questions)

	result := &models.QuizResult{
		TopicID:        *topic,
		QuizType:       *kind,
		Score:          score.correct,
		TotalQuestions: len(questions),
		TimeSpent:      int(time.Since(score.startedAt).Seconds()),
	}
	if err := store.SaveQuizResult(result); err != nil {
		return err
	}

	fmt.Printf("\nScore: %d/%d (%d%%)\n", result.Score, result.TotalQuestions, result.Percentage)
	stats := composer.UsageStats(*topic)
	fmt.Printf("Question history for %q: %d/%d entries used\n", *topic, stats.Used, stats.Capacity)
	return nil
}

type quizScore struct {
	correct   int
	startedAt time.Time
}

// playQuiz runs the interactive question loop and returns the score
func playQuiz(questions []models.Question) quizScore {
	reader := bufio.NewReader(os.Stdin)
	score := quizScore{startedAt: time.Now()}

	for _, q := range questions {
		fmt.Printf("\n%d. %s\n", q.ID, q.Prompt)
		for _, o := range q.Options {
			fmt.Printf("   %s) %s\n", o.ID, o.Text)
		}
		fmt.Print("Your answer [a-d, s to skip]: ")

		answer := readLine(reader)
		if answer == "s" {
			continue
		}

		correct := q.CorrectOption()
		if answer == correct.ID {
			score.correct++
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Wrong. The answer is %s) %s\n", correct.ID, correct.Text)
		}
		if q.CompleteSentence != "" {
			fmt.Printf("   %s\n", q.CompleteSentence)
		}
	}
	return score
}

func runReview(args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	topic := fs.String("topic", "", "restrict the session to one topic")
	minDays := fs.Int("days", 0, "only words reviewed at least this many days ago")
	difficulty := fs.String("difficulty", "", "restrict to a difficulty band: hard, medium, easy")
	fs.Parse(args)

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close()

	store := database.NewProgressStore()
	var words []models.LearnedWord
	var err error
	if *topic != "" {
		words, err = store.GetLearnedWords(*topic)
	} else {
		words, err = store.AllLearnedWords()
	}
	if err != nil {
		return err
	}

	review := spaced_repetition.NewScheduler()
	now := time.Now()
	session := review.SelectForReview(review.DueWords(words, now), now, *minDays, *difficulty)
	if len(session) == 0 {
		fmt.Println("Nothing is due for review.")
		return nil
	}

	fmt.Printf("%d words due for review\n", len(session))
	reader := bufio.NewReader(os.Stdin)
	for _, w := range session {
		fmt.Printf("\n%s (%s, %d reviews)\n", w.English, w.Difficulty, w.ReviewCount)
		fmt.Print("Recall the meaning, then press Enter to reveal...")
		readLine(reader)
		fmt.Printf("-> %s\n", w.Vietnamese)
		fmt.Print("Did you remember? [y/N/q] ")

		answer := readLine(reader)
		if answer == "q" {
			break
		}
		if answer == "y" {
			entry := models.VocabularyEntry{English: w.English, Vietnamese: w.Vietnamese}
			if err := store.MarkWordLearned(w.TopicID, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

func runStats() error {
	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close()

	store := database.NewProgressStore()
	stats, err := store.GetAggregateStats()
	if err != nil {
		return err
	}

	fmt.Printf("Topics started:   %d\n", stats.TopicsStarted)
	fmt.Printf("Words learned:    %d/%d (%d%%)\n", stats.TotalLearnedWords, stats.TotalWords, stats.OverallProgress)
	fmt.Printf("Quizzes taken:    %d\n", stats.TotalQuizzes)
	fmt.Printf("Average score:    %d%%\n", stats.AverageScore)
	fmt.Printf("Streak:           %d day(s)\n", stats.StreakDays)
	if stats.LastActivity != nil {
		fmt.Printf("Last activity:    %s\n", stats.LastActivity.Format("2006-01-02 15:04"))
	}
	return nil
}

func runRemind() error {
	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
	if err != nil {
		return fmt.Errorf("TELEGRAM_CHAT_ID environment variable is not set or invalid")
	}

	notifier, err := notify.NewTelegramNotifier(token, chatID)
	if err != nil {
		return err
	}

	store := database.NewProgressStore()
	s := scheduler.New(store, spaced_repetition.NewScheduler(), notifier)
	s.Start()
	defer s.Stop()

	log.Println("Reminder scheduler started. Press Ctrl+C to stop.")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
	return nil
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(line))
}
