package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	domainrepo "Wayfare-App/internal/domain/repository"
	"Wayfare-App/internal/domain/service"
	"Wayfare-App/internal/handler"
	"Wayfare-App/internal/infrastructure/database"
	"Wayfare-App/internal/infrastructure/geocoding"
	"Wayfare-App/internal/infrastructure/maps"
	"Wayfare-App/internal/infrastructure/places"
	"Wayfare-App/internal/infrastructure/weather"
	repoImpl "Wayfare-App/internal/repository"
	"Wayfare-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	// 外部サービスのプロバイダー
	geocodingProvider := geocoding.NewNominatimGeocodingProvider()
	routingProvider := maps.NewOSRMRoutingProvider()

	weatherAPIKey := os.Getenv("OPENWEATHER_API_KEY")
	if weatherAPIKey == "" {
		fmt.Println("⚠️  OPENWEATHER_API_KEYが未設定のため、天気情報は取得されません")
	}
	weatherProvider := weather.NewOpenWeatherProvider(weatherAPIKey)

	// ジオコードキャッシュ（Redisが設定されている場合のみ）
	var geocodeCache domainrepo.GeocodeCache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		geocodeCache = repoImpl.NewRedisGeocodeCache(redisClient)
		fmt.Println("✅ ジオコードキャッシュ有効 (Redis)")
	}

	lodgingRepo := buildLodgingRepository()

	// ドメインサービス
	geocoder := service.NewGeocoderService(geocodingProvider, geocodeCache)
	estimator := service.NewRouteEstimator(routingProvider)
	planner := service.NewTripPlannerService(geocoder, estimator, lodgingRepo, weatherProvider)
	suggestService := service.NewSuggestService(geocodingProvider)

	// ユースケースとハンドラー
	tripsRepo := repoImpl.NewMemoryTripsRepository()
	tripPlanUseCase := usecase.NewTripPlanUseCase(tripsRepo, planner)
	animationUseCase := usecase.NewTripAnimationUseCase(tripsRepo)
	defer animationUseCase.StopAll()

	tripHandler := handler.NewTripHandler(tripPlanUseCase)
	suggestHandler := handler.NewSuggestHandler(suggestService)
	animationHandler := handler.NewAnimationHandler(animationUseCase)

	router := gin.Default()
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "Wayfare-App"})
	})

	router.POST("/trips", tripHandler.PostTrip)
	router.GET("/trips/:id", tripHandler.GetTrip)
	router.PATCH("/trips/:id", tripHandler.PatchTrip)
	router.DELETE("/trips/:id", tripHandler.DeleteTrip)
	router.POST("/trips/:id/plan", tripHandler.PostPlan)
	router.POST("/trips/:id/waypoints", tripHandler.PostWaypoint)
	router.DELETE("/trips/:id/waypoints/:index", tripHandler.DeleteWaypoint)
	router.GET("/trips/:id/animation", animationHandler.StreamAnimation)
	router.GET("/suggest", suggestHandler.GetSuggestions)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Wayfare-App server starting on :%s...\n", port)
	log.Fatal(router.Run(":" + port))
}

// buildLodgingRepository 環境変数に応じて宿泊施設検索のバックエンドを選択する。
// 優先順: Geoapify (GEOAPIFY_API_KEY) → Supabase → PostgreSQL直接接続
func buildLodgingRepository() domainrepo.LodgingRepository {
	if apiKey := os.Getenv("GEOAPIFY_API_KEY"); apiKey != "" {
		fmt.Println("✅ 宿泊施設検索: Geoapify")
		return places.NewGeoapifyPlacesProvider(apiKey)
	}

	if os.Getenv("SUPABASE_URL") != "" && os.Getenv("SUPABASE_ANON_KEY") != "" {
		supabaseClient, err := database.NewSupabaseClient()
		if err != nil {
			log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
		}
		fmt.Println("✅ 宿泊施設検索: Supabase")
		return repoImpl.NewSupabaseLodgingRepository(supabaseClient)
	}

	if os.Getenv("DATABASE_URL") != "" {
		pgClient, err := database.NewPostgreSQLClient()
		if err != nil {
			log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
		}
		fmt.Println("✅ 宿泊施設検索: PostgreSQL")
		return repoImpl.NewPostgresLodgingRepository(pgClient)
	}

	// バックエンド未設定の場合もGeoapifyを使う（呼び出しは失敗するが
	// 宿泊施設の取得失敗は実行全体では吸収される）
	fmt.Println("⚠️  宿泊施設検索のバックエンドが未設定です（結果は常に空になります）")
	return places.NewGeoapifyPlacesProvider("")
}
