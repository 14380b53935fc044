// Команда admin-token выпускает JWT с ролью admin для административного API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/magabrotheeeer/studio-orders/internal/config"
	"github.com/magabrotheeeer/studio-orders/internal/lib/jwt"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	flag.Parse()

	cfg := config.MustLoad()
	if cfg.JWTSecretKey == "" {
		fmt.Fprintln(os.Stderr, "jwt secret key is not set")
		os.Exit(1)
	}

	token, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL).GenerateToken(*subject, jwt.RoleAdmin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
