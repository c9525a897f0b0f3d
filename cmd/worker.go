package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/benedict-erwin/blog-service/internal/jobs"
	asynqPkg "github.com/benedict-erwin/blog-service/pkg/asynq"
	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/redis"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Manage background job workers",
	Long:  `Manage Asynq background job workers and configuration`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := redis.Init(); err != nil {
			logger.WithScope("workerCmd").Fatal().Err(err).Msg("Failed to initialize Redis")
		}
	},
}

// Subcommands
var (
	workerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start background job worker",
		Long:  `Start Asynq worker to process background jobs`,
		Run: func(cmd *cobra.Command, args []string) {
			startWorker()
		},
	}

	workerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List worker configurations",
		Run: func(cmd *cobra.Command, args []string) {
			listWorkers()
		},
	}

	workerShowCmd = &cobra.Command{
		Use:   "show [worker-name]",
		Short: "Show specific worker configuration",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showWorker(args[0])
		},
	}

	workerSetCmd = &cobra.Command{
		Use:   "set [worker-name] [percentage] [task-types]",
		Short: "Set worker configuration",
		Long:  `Set worker percentage and task types. Task types should be comma-separated.`,
		Args:  cobra.RangeArgs(2, 3),
		Run: func(cmd *cobra.Command, args []string) {
			taskTypes := ""
			if len(args) == 3 {
				taskTypes = args[2]
			}
			setWorker(args[0], args[1], taskTypes)
		},
	}

	workerJobsCmd = &cobra.Command{
		Use:   "jobs",
		Short: "List registered job types",
		Run: func(cmd *cobra.Command, args []string) {
			listJobs()
		},
	}

	workerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show current queue status",
		Run: func(cmd *cobra.Command, args []string) {
			showStatus()
		},
	}

	workerValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate worker configuration",
		Run: func(cmd *cobra.Command, args []string) {
			validateConfig()
		},
	}

	workerResetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset to default configuration",
		Run: func(cmd *cobra.Command, args []string) {
			resetConfig()
		},
	}

	workerConcurrencyCmd = &cobra.Command{
		Use:   "concurrency [number]",
		Short: "Set worker concurrency",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			setConcurrency(args[0])
		},
	}
)

// startWorker initializes and starts the Asynq worker server with graceful shutdown
func startWorker() {
	// Setup logger scope
	log := logger.WithScope("startWorker")

	if !asynqPkg.Enabled() {
		log.Fatal().Msg("Asynq is disabled, set asynq.enabled and redis.enabled in .config")
	}

	// Initialize asynq client
	if err := asynqPkg.InitClient(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Asynq client")
	}

	// Initialize server
	asynqPkg.InitConcurrency()
	server := asynqPkg.InitServer()
	mux := asynq.NewServeMux()

	if _, err := jobs.RegisterHandlers(mux); err != nil {
		log.Fatal().Err(err).Msg("Failed to register job handlers")
	}

	// Setup shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	// Start heartbeat goroutine
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				asynqPkg.SetWorkerHeartbeat()
			case <-done:
				return
			}
		}
	}()

	// Start server
	go func() {
		log.Info().Msg("Starting Asynq worker server...")
		asynqPkg.SetServerRunning(true)
		asynqPkg.SetWorkerHeartbeat()

		if err := server.Run(mux); err != nil {
			asynqPkg.SetServerRunning(false)
			log.Fatal().Err(err).Msg("Failed to start worker server")
		}
		asynqPkg.SetServerRunning(false)
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	close(done)
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal, waiting for running tasks to complete...")

	server.Shutdown()
	asynqPkg.ClearServerReference()
	asynqPkg.CloseClient()

	log.Info().Msg("Worker server stopped gracefully")
}

// listWorkers renders every worker configuration as a table
func listWorkers() {
	asynqPkg.InitConcurrency()

	workers := asynqPkg.GetWorkers()
	queues := asynqPkg.GenerateQueues()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Queue", "Percentage", "Weight", "Task Types"})
	for _, w := range workers {
		table.Append([]string{
			w.Name,
			fmt.Sprintf("%d%%", w.Percentage),
			strconv.Itoa(queues[w.Name]),
			strings.Join(w.TaskTypes, ", "),
		})
	}
	table.Render()

	fmt.Printf("\nConcurrency: %d\n", asynqPkg.GetConcurrency())
}

// showWorker prints one worker configuration as JSON
func showWorker(name string) {
	asynqPkg.InitConcurrency()

	for _, w := range asynqPkg.GetWorkers() {
		if w.Name != name {
			continue
		}
		output := map[string]interface{}{
			"queue":      w.Name,
			"percentage": w.Percentage,
			"weight":     asynqPkg.GenerateQueues()[w.Name],
			"task_types": w.TaskTypes,
		}
		jsonData, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			fmt.Printf("{\"error\": \"Failed to marshal JSON: %v\"}\n", err)
			return
		}
		fmt.Println(string(jsonData))
		return
	}
	fmt.Printf("{\"error\": \"Worker '%s' not found\"}\n", name)
}

// setWorker updates worker configuration with new percentage and task types
func setWorker(name, percentageStr, taskTypesStr string) {
	asynqPkg.InitConcurrency()

	percentage, err := strconv.Atoi(percentageStr)
	if err != nil {
		fmt.Printf("Invalid percentage: %s\n", percentageStr)
		return
	}

	var taskTypes []string
	if taskTypesStr != "" {
		for _, t := range strings.Split(taskTypesStr, ",") {
			if t = strings.TrimSpace(t); t != "" {
				taskTypes = append(taskTypes, t)
			}
		}
	}

	if err := asynqPkg.SetWorker(name, percentage, taskTypes); err != nil {
		fmt.Printf("Failed to update worker: %v\n", err)
		return
	}
	fmt.Printf("Worker '%s' updated: %d%% with %d task types\n", name, percentage, len(taskTypes))
}

// listJobs prints every registered task type with its queue
func listJobs() {
	registered, err := jobs.GetRegisteredJobs()
	if err != nil {
		fmt.Printf("Failed to read job registry: %v\n", err)
		return
	}
	sort.Slice(registered, func(i, j int) bool { return registered[i].TaskType < registered[j].TaskType })

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Task Type", "Queue"})
	for _, j := range registered {
		table.Append([]string{j.TaskType, j.Queue})
	}
	table.Render()
}

// showStatus displays current queue configuration and concurrency settings
func showStatus() {
	asynqPkg.InitConcurrency()

	queues := asynqPkg.GenerateQueues()
	names := make([]string, 0, len(queues))
	for name := range queues {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Active Queue Configuration:\n")
	total := 0
	for _, name := range names {
		fmt.Printf("  %s: %d weight\n", name, queues[name])
		total += queues[name]
	}
	fmt.Printf("\nConcurrency: %d workers\n", asynqPkg.GetConcurrency())
	fmt.Printf("Total Weight: %d\n", total)
	fmt.Printf("Worker running: %v\n", asynqPkg.IsServerRunning())
}

// validateConfig checks if current worker configuration is valid
func validateConfig() {
	asynqPkg.InitConcurrency()

	if err := asynqPkg.ValidateWorkerConfig(); err != nil {
		fmt.Printf("Validation failed: %v\n", err)
		return
	}
	fmt.Println("Worker configuration is valid")
}

// resetConfig resets worker configuration to registry defaults
func resetConfig() {
	asynqPkg.InitConcurrency()

	if err := asynqPkg.ResetToDefault(); err != nil {
		fmt.Printf("Failed to reset worker configuration: %v\n", err)
		return
	}
	fmt.Println("Worker configuration reset to defaults")
}

// setConcurrency updates worker concurrency setting with restart instructions
func setConcurrency(concurrencyStr string) {
	concurrency, err := strconv.Atoi(concurrencyStr)
	if err != nil {
		fmt.Printf("Invalid concurrency: %s\n", concurrencyStr)
		return
	}

	if err := asynqPkg.SetConcurrency(concurrency); err != nil {
		fmt.Printf("Failed to set concurrency: %v\n", err)
		return
	}

	fmt.Printf("Concurrency updated to %d\n", concurrency)

	if asynqPkg.IsServerRunning() {
		fmt.Println("Worker is currently running. Restart it to apply the new concurrency:")
		fmt.Println("   1. Stop current worker gracefully (Ctrl+C)")
		fmt.Println("   2. Run: ./app worker start")
	} else {
		fmt.Println("Start worker with: ./app worker start")
	}
}

// init registers all worker subcommands with the root command
func init() {
	workerCmd.AddCommand(workerStartCmd)
	workerCmd.AddCommand(workerListCmd)
	workerCmd.AddCommand(workerShowCmd)
	workerCmd.AddCommand(workerSetCmd)
	workerCmd.AddCommand(workerJobsCmd)
	workerCmd.AddCommand(workerStatusCmd)
	workerCmd.AddCommand(workerValidateCmd)
	workerCmd.AddCommand(workerResetCmd)
	workerCmd.AddCommand(workerConcurrencyCmd)

	rootCmd.AddCommand(workerCmd)
}
