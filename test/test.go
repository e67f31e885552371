// Manual smoke client: log in and fetch the dashboard of a running
// instance.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func main() {
	client := http.Client{}
	baseurl := "http://127.0.0.1:7320/api"

	login, _ := json.Marshal(map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	req, err := http.NewRequestWithContext(context.Background(), "POST", baseurl+"/login", bytes.NewReader(login))
	if err != nil {
		fmt.Println("can't create request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("err:", err)
		return
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var loginResp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &loginResp); err != nil {
		fmt.Println("bad login response:", string(body))
		return
	}

	req, err = http.NewRequestWithContext(context.Background(), "GET", baseurl+"/dashboard", http.NoBody)
	if err != nil {
		fmt.Println("can't create request")
		return
	}
	req.Header.Set("Authorization", "Bearer "+loginResp.Data.AccessToken)
	req.Header.Set("accept", "application/json")
	resp, err = client.Do(req)
	if err != nil {
		fmt.Println("err:", err)
		return
	}
	body, _ = io.ReadAll(resp.Body)
	fmt.Println(string(body))
	resp.Body.Close()
}
