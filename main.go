/* main.go
 * The "main" method for running the service. Loads configuration, wires the API facade,
 * schedules the periodic feed refresh, starts the webhook server and runs the Discord bot
 * Usage: go run main.go -mode="<mode>" -addr="<addr>"
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"scorecast/api/api"
	"scorecast/bot"
	"scorecast/web"
)

func main() {
	err := godotenv.Load()

	// Flags
	modePtr := flag.String("mode", "default", "Operating mode, default or demo. Demo keeps its own fixtures, picks and standings")
	addrPtr := flag.String("addr", ":8080", "Listen address for the webhook and JSON endpoints")
	cachePtr := flag.String("cache", ".cache", "Directory for locally cached bracket predictions")
	timezonePtr := flag.String("timezone", "UTC", "Display timezone for matchday grouping, e.g. America/New_York")
	refreshPtr := flag.String("refresh", "@every 15m", "Cron schedule for pulling the results feed")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")

	flag.Parse()

	if err != nil {
		log.Fatal("Error loading .env file")
	}

	useTestBot, err := convertStrToBool(*testPtr)
	if err != nil {
		log.Fatal("Invalid \"test\" flag. Should be true or false")
	}
	discordToken := os.Getenv("DISCORD_PROD_TOKEN")
	if useTestBot {
		discordToken = os.Getenv("DISCORD_BETA_TOKEN")
	}

	mode, err := parseMode(*modePtr)
	if err != nil {
		log.Fatal(err)
	}

	apiPtr, err := api.NewAPI(api.Config{
		DBName:   "scorecast",
		MongoURI: os.Getenv("MONGO_URI"),
		Mode:     mode,
		CacheDir: *cachePtr,
		FeedURL:  os.Getenv("FEED_URL"),
		FeedKey:  os.Getenv("FEED_API_KEY"),
		Timezone: *timezonePtr,
	})
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err := apiPtr.Store.GetClient().Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	// Pull the feed once on startup so the bot has fixtures to answer with
	if err := apiPtr.RefreshData(context.Background()); err != nil {
		log.Println("initial refresh failed:", err)
	}

	// Schedule the periodic feed refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(*refreshPtr, func() {
		if err := apiPtr.RefreshData(context.Background()); err != nil {
			log.Println("scheduled refresh failed:", err)
		}
	}); err != nil {
		log.Fatalf("invalid refresh schedule %q: %v", *refreshPtr, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Webhook and JSON endpoints run alongside the bot
	go func() {
		if err := web.Start(web.Config{Addr: *addrPtr, API: apiPtr}); err != nil {
			log.Println("web server stopped:", err)
		}
	}()

	// Init bot and run until interrupted
	b, err := bot.NewBot(discordToken, apiPtr)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	if err := b.Run(); err != nil {
		log.Fatalf("bot stopped: %v", err)
	}
}
