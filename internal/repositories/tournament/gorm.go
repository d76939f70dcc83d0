package tournament

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/KirkDiggler/autoref/internal/models"
)

// Config holds configuration for the gorm tournament repository
type Config struct {
	DB *gorm.DB
}

type gormRepository struct {
	db *gorm.DB
}

// NewGorm creates a tournament repository on top of an open gorm connection
func NewGorm(cfg *Config) (*gormRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &gormRepository{db: cfg.DB}, nil
}

// Migrate creates or updates the tables the bot uses
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.OsuUser{},
		&models.User{},
		&models.RefereeInfo{},
		&models.Round{},
		&models.MatchRoom{},
		&models.QualifierRoom{},
		&models.Player{},
		&models.ScoreResult{},
	)
}

func (r *gormRepository) GetMatchRoom(ctx context.Context, input *GetMatchRoomInput) (*GetMatchRoomOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match id is required")
	}

	var room models.MatchRoom
	err := r.db.WithContext(ctx).
		Preload("Round").
		Preload("TeamRed.OsuData").
		Preload("TeamBlue.OsuData").
		First(&room, "id = ?", input.MatchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match %s: %w", input.MatchID, err)
	}
	return &GetMatchRoomOutput{Room: &room}, nil
}

func (r *gormRepository) GetQualifierRoom(ctx context.Context, input *GetQualifierRoomInput) (*GetQualifierRoomOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("room id is required")
	}

	var room models.QualifierRoom
	err := r.db.WithContext(ctx).
		Preload("Round").
		Preload("Players.User.OsuData").
		First(&room, "id = ?", input.RoomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQualifierRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load qualifier room %s: %w", input.RoomID, err)
	}
	return &GetQualifierRoomOutput{Room: &room}, nil
}

func (r *gormRepository) GetReferee(ctx context.Context, input *GetRefereeInput) (*GetRefereeOutput, error) {
	if input == nil || input.DisplayName == "" {
		return nil, errors.New("display name is required")
	}

	var ref models.RefereeInfo
	err := r.db.WithContext(ctx).
		Where("LOWER(display_name) = LOWER(?)", input.DisplayName).
		First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRefereeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load referee %s: %w", input.DisplayName, err)
	}
	return &GetRefereeOutput{Referee: &ref}, nil
}

func (r *gormRepository) SaveReferee(ctx context.Context, input *SaveRefereeInput) (*SaveRefereeOutput, error) {
	if input == nil || input.Referee == nil {
		return nil, errors.New("input and referee cannot be nil")
	}
	ref := *input.Referee
	ref.DisplayName = strings.TrimSpace(ref.DisplayName)
	if ref.DisplayName == "" {
		return nil, errors.New("display name is required")
	}
	if ref.IRCPassword == "" {
		return nil, errors.New("IRC password is required")
	}

	out := &SaveRefereeOutput{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.RefereeInfo
		err := tx.Where("LOWER(display_name) = LOWER(?)", ref.DisplayName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ref.ID = 0
			out.Created = true
			return tx.Create(&ref).Error
		}
		if err != nil {
			return err
		}

		ref.ID = existing.ID
		return tx.Model(&existing).
			Select("DisplayName", "DiscordID", "OsuID", "IRCPassword").
			Updates(&ref).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save referee %s: %w", ref.DisplayName, err)
	}

	out.Referee = &ref
	return out, nil
}

func (r *gormRepository) GetRoundForRoom(ctx context.Context, input *GetRoundForRoomInput) (*GetRoundForRoomOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("room id is required")
	}

	db := r.db.WithContext(ctx)
	var roundID int

	var match models.MatchRoom
	err := db.Select("id", "round_id").First(&match, "id = ?", input.RoomID).Error
	switch {
	case err == nil:
		roundID = match.RoundID
	case errors.Is(err, gorm.ErrRecordNotFound):
		var quals models.QualifierRoom
		err = db.Select("id", "round_id").First(&quals, "id = ?", input.RoomID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load qualifier room %s: %w", input.RoomID, err)
		}
		roundID = quals.RoundID
	default:
		return nil, fmt.Errorf("failed to load match %s: %w", input.RoomID, err)
	}

	var round models.Round
	if err := db.First(&round, roundID).Error; err != nil {
		return nil, fmt.Errorf("failed to load round %d: %w", roundID, err)
	}
	return &GetRoundForRoomOutput{Round: &round}, nil
}

func (r *gormRepository) GetUsersByOsuIDs(ctx context.Context, input *GetUsersByOsuIDsInput) (*GetUsersByOsuIDsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	out := &GetUsersByOsuIDsOutput{Users: make(map[int]*models.User)}
	if len(input.OsuIDs) == 0 {
		return out, nil
	}

	var users []*models.User
	if err := r.db.WithContext(ctx).Where("osu_id IN ?", input.OsuIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range users {
		out.Users[u.OsuID] = u
	}
	return out, nil
}

func (r *gormRepository) SaveMatchResult(ctx context.Context, input *SaveMatchResultInput) error {
	if input == nil || input.MatchID == "" {
		return errors.New("match id is required")
	}

	end := input.EndTime
	room := models.MatchRoom{
		BannedMaps: input.Banned,
		PickedMaps: input.Picked,
		EndTime:    &end,
	}
	columns := []string{"BannedMaps", "PickedMaps", "EndTime"}
	if input.MpLinkID != 0 {
		link := input.MpLinkID
		room.MpLinkID = &link
		columns = append(columns, "MpLinkID")
	}

	res := r.db.WithContext(ctx).
		Model(&models.MatchRoom{ID: input.MatchID}).
		Select(columns).
		Updates(&room)
	if res.Error != nil {
		return fmt.Errorf("failed to save match %s: %w", input.MatchID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *gormRepository) SaveQualifierResult(ctx context.Context, input *SaveQualifierResultInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("room id is required")
	}

	res := r.db.WithContext(ctx).
		Model(&models.QualifierRoom{ID: input.RoomID}).
		Update("mp_link_id", input.MpLinkID)
	if res.Error != nil {
		return fmt.Errorf("failed to save qualifier room %s: %w", input.RoomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrQualifierRoomNotFound
	}
	return nil
}

func (r *gormRepository) SaveScores(ctx context.Context, input *SaveScoresInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if len(input.Scores) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(input.Scores, 100).Error; err != nil {
		return fmt.Errorf("failed to save %d scores: %w", len(input.Scores), err)
	}
	return nil
}
