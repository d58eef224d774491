package testutil

import (
	"context"
	"database/sql"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/repository"
)

// The fixture forms two teams sharing the same member set: Team1 runs the
// collaboration workflow, Team2 runs the task workflow. User4 belongs to
// neither.
var (
	User1 = entity.User{
		Base:      entity.Base{ID: "user1"},
		Name:      "user1",
		Languages: entity.Array[string]{"en", "fr"},
	}
	User2 = entity.User{
		Base:      entity.Base{ID: "user2"},
		Name:      "user2",
		Languages: entity.Array[string]{"en", "fr"},
	}
	User3 = entity.User{
		Base:      entity.Base{ID: "user3"},
		Name:      "user3",
		Languages: entity.Array[string]{"en", "fr", "es"},
	}
	User4 = entity.User{
		Base:      entity.Base{ID: "user4"},
		Name:      "user4",
		Languages: entity.Array[string]{"en"},
	}

	Team1 = entity.Team{
		Base:          entity.Base{ID: "team1"},
		Name:          "Team1",
		Slug:          "team1",
		WorkflowStyle: entity.WorkflowStyleCollaboration,
	}
	Team2 = entity.Team{
		Base:              entity.Base{ID: "team2"},
		Name:              "Team2",
		Slug:              "team2",
		WorkflowStyle:     entity.WorkflowStyleTasks,
		TaskExpiration:    sql.NullInt64{Int64: 3, Valid: true},
		MaxTasksPerMember: sql.NullInt64{Int64: 2, Valid: true},
	}

	Video1 = entity.TeamVideo{
		Base:                     entity.Base{ID: "teamvideo1"},
		TeamID:                   Team1.ID,
		VideoID:                  "video1",
		Title:                    "Team1 Video1",
		PrimaryAudioLanguageCode: "en",
		DurationSeconds:          600,
	}
	Video2 = entity.TeamVideo{
		Base:                     entity.Base{ID: "teamvideo2"},
		TeamID:                   Team2.ID,
		VideoID:                  "video2",
		Title:                    "Team2 Video2",
		PrimaryAudioLanguageCode: "en",
		DurationSeconds:          300,
	}
)

// Team1Languages are the languages Team1 produces subtitles in.
var Team1Languages = []string{"en", "fr"}

// Team2TranslationLanguages get translate tasks autocreated once the
// original subtitles of a Team2 video complete.
var Team2TranslationLanguages = []string{"fr"}

func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertTeams(ctx)
	insertVideos(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{User1, User2, User3, User4} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func insertTeams(ctx context.Context) {
	teamRepo := repository.NewTeamRepository(&MockRedisClient{})
	teamMemberRepo := repository.NewTeamMemberRepository()
	collabLangRepo := repository.NewCollaborationLanguageRepository()
	langPrefRepo := repository.NewTeamLanguagePreferenceRepository()

	for _, team := range []entity.Team{Team1, Team2} {
		team := team
		if err := teamRepo.Create(ctx, &team); err != nil {
			panic(err)
		}

		members := []entity.TeamMember{
			{TeamID: team.ID, UserID: User1.ID, Role: entity.RoleOwner},
			{TeamID: team.ID, UserID: User2.ID, Role: entity.RoleContributor},
			{TeamID: team.ID, UserID: User3.ID, Role: entity.RoleManager},
		}

		for _, member := range members {
			member := member
			if err := teamMemberRepo.Create(ctx, &member); err != nil {
				panic(err)
			}
		}
	}

	for _, code := range Team1Languages {
		err := collabLangRepo.Create(ctx, &entity.CollaborationLanguage{
			Base:         entity.Base{ID: "team1_lang_" + code},
			TeamID:       Team1.ID,
			LanguageCode: code,
		})
		if err != nil {
			panic(err)
		}
	}

	for _, code := range Team2TranslationLanguages {
		err := langPrefRepo.Create(ctx, &entity.TeamLanguagePreference{
			Base:         entity.Base{ID: "team2_pref" + code},
			TeamID:       Team2.ID,
			LanguageCode: code,
		})
		if err != nil {
			panic(err)
		}
	}
}

func insertVideos(ctx context.Context) {
	teamVideoRepo := repository.NewTeamVideoRepository()

	for _, video := range []entity.TeamVideo{Video1, Video2} {
		video := video
		if err := teamVideoRepo.Create(ctx, &video); err != nil {
			panic(err)
		}
	}
}
