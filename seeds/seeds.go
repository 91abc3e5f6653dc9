package seeds

import (
	"context"
	"fmt"
	"log"

	"github.com/actuallystonmai/game-recommender/internal/dataset"
	"github.com/actuallystonmai/game-recommender/internal/ingest"
	"github.com/actuallystonmai/game-recommender/internal/repository"
)

// Setup runs a small sample catalog through the real ingestion pipeline and
// persists the compact dataset, so a fresh database can serve
// recommendations immediately.
func Setup(ctx context.Context, repo *repository.Repository, workers int) error {
	log.Println("[seed] building sample catalog")
	builder := ingest.NewBuilder(workers)
	catalog, graph, err := builder.Build(ctx, sampleRows())
	if err != nil {
		return fmt.Errorf("build sample catalog: %w", err)
	}

	records, err := dataset.EncodeCatalog(catalog, graph)
	if err != nil {
		return fmt.Errorf("encode sample catalog: %w", err)
	}

	log.Println("[seed] inserting games")
	if err := repo.SaveGames(ctx, records); err != nil {
		return fmt.Errorf("seed games: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

const maturePrefix = "This Game may contain content not appropriate for all ages, " +
	"or may not be appropriate for viewing at work:"

func wideRow(url, name, reviews, tags, details, genre, description, mature, price string) []string {
	row := make([]string, 20)
	row[0] = url
	row[2] = name
	row[5] = reviews
	row[9] = tags
	row[10] = details
	row[13] = genre
	row[14] = description
	row[15] = mature
	row[18] = price
	return row
}

func reviews(label string, positivePct int, count string) string {
	return fmt.Sprintf("%s,(%s),- %d%% of the %s user reviews for this game are positive.",
		label, count, positivePct, count)
}

func sampleRows() [][]string {
	return [][]string{
		wideRow(
			"https://store.steampowered.com/app/477160/Human_Fall_Flat/",
			"Human: Fall Flat",
			reviews("Very Positive", 91, "132,919"),
			"Funny,Co-op,Puzzle,Multiplayer",
			"Single-player,Multi-player,Online Multi-Player",
			"Adventure,Indie",
			"Human: Fall Flat is a hilarious, light-hearted physics platformer set in floating dreamscapes.",
			"",
			"$14.99",
		),
		wideRow(
			"https://store.steampowered.com/app/252950/Rocket_League/",
			"Rocket League",
			reviews("Very Positive", 88, "292,733"),
			"Soccer,Racing,Multiplayer,Competitive",
			"Multi-player,Online Multi-Player,Cross-Platform Multiplayer",
			"Racing,Sports",
			"A futuristic sports-action game where boost-rigged vehicles hit the field for soccer with cars.",
			"",
			"$19.99",
		),
		wideRow(
			"https://store.steampowered.com/app/413150/Stardew_Valley/",
			"Stardew Valley",
			reviews("Overwhelmingly Positive", 98, "291,005"),
			"Farming Sim,Pixel Graphics,Relaxing,Multiplayer",
			"Single-player,Multi-player,Co-op",
			"Indie,RPG,Simulation",
			"You've inherited your grandfather's old farm plot. Can you learn to live off the land?",
			"",
			"$14.99",
		),
		wideRow(
			"https://store.steampowered.com/app/292030/The_Witcher_3_Wild_Hunt/",
			"The Witcher 3: Wild Hunt",
			reviews("Overwhelmingly Positive", 97, "294,587"),
			"Open World,RPG,Story Rich,Atmospheric",
			"Single-player",
			"RPG",
			"As war rages on, you are Geralt of Rivia, a monster slayer for hire on the trail of a child of prophecy.",
			maturePrefix+" Nudity or Sexual Content, Frequent Violence or Gore, General Mature Content",
			"$39.99",
		),
		wideRow(
			"https://store.steampowered.com/app/72850/The_Elder_Scrolls_V_Skyrim/",
			"The Elder Scrolls V: Skyrim",
			reviews("Very Positive", 94, "257,899"),
			"Open World,RPG,Adventure,Moddable",
			"Single-player",
			"RPG",
			"The Empire of Tamriel is on the edge. The future of Skyrim hangs in the balance as dragons return.",
			maturePrefix+" Frequent Violence or Gore",
			"$19.99",
		),
		wideRow(
			"https://store.steampowered.com/app/379720/DOOM/",
			"DOOM",
			reviews("Very Positive", 95, "98,968"),
			"FPS,Gore,Action,Shooter",
			"Single-player,Multi-player",
			"Action",
			"Fight through hordes of demons across the infested UAC facility on Mars and into Hell itself.",
			maturePrefix+" Frequent Violence or Gore",
			"$19.99",
		),
		wideRow(
			"https://store.steampowered.com/app/730/CounterStrike_Global_Offensive/",
			"Counter-Strike: Global Offensive",
			reviews("Very Positive", 87, "3,589,421"),
			"FPS,Shooter,Multiplayer,Action",
			"Multi-player,Stats",
			"Action",
			"Counter-Strike: Global Offensive expands upon the team-based action gameplay it pioneered.",
			maturePrefix+" Frequent Violence or Gore",
			"",
		),
		wideRow(
			"https://store.steampowered.com/app/8930/Sid_Meiers_Civilization_V/",
			"Sid Meier's Civilization V",
			reviews("Overwhelmingly Positive", 96, "88,179"),
			"Strategy,Turn-Based,Multiplayer,Historical",
			"Single-player,Multi-player",
			"Strategy",
			"Become Ruler of the World by establishing and leading a civilization from the dawn of man.",
			"",
			"$29.99",
		),
		wideRow(
			"https://store.steampowered.com/app/268500/XCOM_2/",
			"XCOM 2",
			reviews("Very Positive", 88, "48,562"),
			"Strategy,Turn-Based,Tactical,Sci-fi",
			"Single-player,Multi-player",
			"Strategy",
			"Earth has changed. Facing impossible odds you must rebuild XCOM and ignite a global resistance.",
			"",
			"$59.99",
		),
		wideRow(
			"https://store.steampowered.com/app/504230/Celeste/",
			"Celeste",
			reviews("Overwhelmingly Positive", 98, "27,587"),
			"Platformer,Pixel Graphics,Difficult,Great Soundtrack",
			"Single-player",
			"Action,Indie",
			"Help Madeline survive her inner demons on her journey to the top of Celeste Mountain.",
			"",
			"$19.99",
		),
		wideRow(
			"https://store.steampowered.com/app/105600/Terraria/",
			"Terraria",
			reviews("Overwhelmingly Positive", 97, "455,459"),
			"Sandbox,Crafting,Survival,Multiplayer",
			"Single-player,Multi-player,Co-op",
			"Action,Adventure,Indie,RPG",
			"Dig, fight, explore, build! Nothing is impossible in this action-packed adventure game.",
			"",
			"$9.99",
		),
		wideRow(
			"https://store.steampowered.com/app/238320/Outlast/",
			"Outlast",
			reviews("Very Positive", 95, "43,301"),
			"Horror,Survival Horror,Atmospheric,Dark",
			"Single-player",
			"Action,Adventure,Indie",
			"In the remote mountains of Colorado, horrors wait inside Mount Massive Asylum.",
			maturePrefix+" Intense Horror, Frequent Violence or Gore, Disturbing Scenes",
			"$19.99",
		),
	}
}
