package main

import (
	"fmt"
	"os"

	"nexuscrm/config"
	"nexuscrm/dao"
	"nexuscrm/logutils"
	"nexuscrm/service"
	"nexuscrm/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	r := gin.Default()
	err := dao.InitDB()
	if err != nil {
		fmt.Println("err init:", err)
		os.Exit(1)
	}

	cfg := config.GetConfig()
	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	h := service.NewHandler(dao.NewStore(dao.DB), util.GetTokenMgr())

	api := r.Group("/api")
	h.RegisterPublicAuth(api)

	authed := r.Group("/api", h.AuthMiddleware())
	h.Register(authed)

	err = r.Run(cfg.Server.Addr)
	if err != nil {
		logutils.Log.Fatal(err)
	}
}
