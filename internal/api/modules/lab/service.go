package lab

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/imfe-lab/aulalab/internal/dialogue"
	"github.com/imfe-lab/aulalab/internal/embeddings"
	"github.com/imfe-lab/aulalab/internal/index"
	"github.com/imfe-lab/aulalab/internal/session"
	"github.com/imfe-lab/aulalab/internal/stores/interaction"
	"github.com/imfe-lab/aulalab/pkg/utils"
)

// Service wires the lab's capabilities: index construction, dialogue
// handling, and the session registry. Session state itself lives in the
// CourseSession values threaded through every call.
type Service struct {
	builder    *index.Builder
	controller *dialogue.Controller
	registry   *session.Registry
}

var service *Service

// Init builds the production service from configuration
func Init(cfg *utils.Config) {
	apiKey := cfg.Get("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("[LAB]: OPENAI_API_KEY not set in environment")
	}

	// One client for both chat and embedding calls; external calls are
	// blocking with a bounded wait
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(60*time.Second),
	)

	embedService, err := embeddings.NewService(embeddings.ConfigFromEnv(cfg), client)
	if err != nil {
		log.Fatalf("[LAB]: Failed to initialize embedding service: %v", err)
	}

	tuning, err := dialogue.LoadTuning(cfg.Get("POLICY_TUNING_PATH"))
	if err != nil {
		log.Fatalf("[LAB]: Failed to load policy tuning: %v", err)
	}

	policy := dialogue.LoadPolicy(cfg)
	generator := dialogue.NewOpenAIGenerator(client, tuning)

	// The durable mirror is optional; without MySQL the in-memory log and
	// CSV export still carry the research data
	var mirror dialogue.Mirror
	if cfg.Get("MYSQL_HOST") != "" {
		dbConfig := mysql.Config{
			User:      cfg.Get("MYSQL_USER"),
			Passwd:    cfg.Get("MYSQL_ROOT_PASSWORD"),
			Net:       "tcp",
			Addr:      fmt.Sprintf("%s:%s", cfg.Get("MYSQL_HOST"), cfg.Get("MYSQL_PORT")),
			DBName:    cfg.Get("MYSQL_DATABASE"),
			ParseTime: true,
		}

		store, err := interaction.NewStore(dbConfig.FormatDSN())
		if err != nil {
			log.Fatalf("[LAB]: Failed to initialize interaction store: %v", err)
		}
		mirror = interaction.NewMirror(store)
	} else {
		log.Print("[LAB]: MYSQL_HOST not set, durable mirror disabled")
	}

	service = NewService(
		index.NewBuilder(embedService),
		dialogue.NewController(generator, policy, tuning, mirror),
		session.NewRegistry(),
	)
}

// NewService creates a service from explicit collaborators
func NewService(builder *index.Builder, controller *dialogue.Controller, registry *session.Registry) *Service {
	return &Service{
		builder:    builder,
		controller: controller,
		registry:   registry,
	}
}

// GetService returns the service instance
func GetService() *Service {
	if service == nil {
		log.Fatal("[LAB]: Service is not initialized")
	}
	return service
}

// CreateSession indexes the uploaded course notes and activates a session.
// Nothing is registered when ingestion fails, so a failed setup can simply be
// retried.
func (s *Service) CreateSession(ctx context.Context, courseCode, groupID, participantsBlock string, document []byte) (*session.CourseSession, error) {
	participants := session.ParseParticipants(participantsBlock)

	idx, err := s.builder.Build(ctx, document)
	if err != nil {
		return nil, err
	}

	sess, err := session.NewCourseSession(courseCode, groupID, participants, idx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrInvalidSession, err)
	}

	s.registry.Add(sess)
	return sess, nil
}

// FindSession returns an active session by its string ID
func (s *Service) FindSession(sessionID string) (*session.CourseSession, error) {
	guid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format: %v", err)
	}

	return s.registry.Get(guid)
}

// HandleTurn runs one explanation turn against an active session
func (s *Service) HandleTurn(ctx context.Context, sessionID, author, text string) (session.Turn, error) {
	sess, err := s.FindSession(sessionID)
	if err != nil {
		return session.Turn{}, err
	}

	return s.controller.HandleTurn(ctx, sess, author, text)
}

// Transcript returns the display messages of an active session
func (s *Service) Transcript(sessionID string) ([]session.Message, error) {
	sess, err := s.FindSession(sessionID)
	if err != nil {
		return nil, err
	}

	return session.Transcript(sess.Log.Turns()), nil
}

// ExportCSV serializes a session's turn log for download
func (s *Service) ExportCSV(sessionID string) (filename string, data []byte, err error) {
	sess, err := s.FindSession(sessionID)
	if err != nil {
		return "", nil, err
	}

	data, err = session.ExportCSV(sess.Log.Turns())
	if err != nil {
		return "", nil, err
	}

	return session.ExportFilename(sess.CourseCode, sess.GroupID), data, nil
}

// RemoveSession ends a session and frees its state
func (s *Service) RemoveSession(sessionID string) (*session.CourseSession, error) {
	guid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format: %v", err)
	}

	return s.registry.Remove(guid)
}
