package account_test

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and helpers for the accounts service end-to-end tests.
 * The service runs with MAIL_DRIVER=log so verification links are read back
 * from the container log.
 */

const testImageName = "accounts-test:latest"

// TestMain builds the Docker image once for all tests and removes it after.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stdout, "skipping e2e tests in short mode")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building Accounts Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Accounts Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/account/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

type service struct {
	container testcontainers.Container
	client    *accountsdk.Client
}

// setupAccountsContainer starts the service and returns a client bound to it.
func setupAccountsContainer(t *testing.T, extraEnv map[string]string) *service {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"AUTH_ISSUER":     "accounts-e2e",
		"AUTH_VERIFY_URL": "http://localhost:8080/verify",
		"MAIL_DRIVER":     "log",
		"ENV":             "test",
		"LOG_LEVEL":       "info",
		"LOG_FORMAT":      "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &service{
		container: container,
		client:    accountsdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port())),
	}
}

// verifyLinks returns every link the log dispatcher has written so far.
func (s *service) verifyLinks(t *testing.T) []string {
	t.Helper()
	links, err := s.readLinks()
	require.NoError(t, err)
	return links
}

func (s *service) readLinks() ([]string, error) {
	rc, err := s.container.Logs(context.Background())
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var links []string
	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '{'); i > 0 {
			line = line[i:]
		}
		var entry struct {
			VerifyURL string `json:"verify_url"`
		}
		if json.Unmarshal([]byte(line), &entry) != nil || entry.VerifyURL == "" {
			continue
		}
		links = append(links, entry.VerifyURL[strings.LastIndexByte(entry.VerifyURL, '/')+1:])
	}
	return links, sc.Err()
}

// register creates an account and returns the link mailed for it.
func (s *service) register(t *testing.T, login, email, password string) string {
	t.Helper()

	before := len(s.verifyLinks(t))
	res, err := s.client.Register(t.Context(), accountsdk.RegisterRequest{Login: login, Email: email, Password: password})
	require.NoError(t, err)
	require.True(t, res.Success, "register %s: %s", login, res.Message)

	var link string
	require.Eventually(t, func() bool {
		links, err := s.readLinks()
		if err == nil && len(links) > before {
			link = links[len(links)-1]
			return true
		}
		return false
	}, 10*time.Second, 200*time.Millisecond, "verification link never logged")

	require.Len(t, link, 64)
	return link
}

func (s *service) login(t *testing.T, login, password string) *accountsdk.Result {
	t.Helper()
	res, err := s.client.Login(t.Context(), accountsdk.LoginRequest{Login: login, Password: password})
	require.NoError(t, err)
	return res
}
