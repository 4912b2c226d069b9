package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(untagCmd)
}

var tagCmd = &cobra.Command{
	Use:   "tag NAME",
	Short: "Add a tag to the current timer",
	Args:  cobra.ExactArgs(1),
	RunE:  runTag,
}

func runTag(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	t, err := c.AddTag(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Tags: %s\n", strings.Join(t.Tags, ", "))
	return nil
}

var untagCmd = &cobra.Command{
	Use:   "untag NAME",
	Short: "Remove a tag from the current timer",
	Args:  cobra.ExactArgs(1),
	RunE:  runUntag,
}

func runUntag(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	t, err := c.RemoveTag(args[0])
	if err != nil {
		return err
	}

	if len(t.Tags) == 0 {
		fmt.Println("No tags")
		return nil
	}
	fmt.Printf("Tags: %s\n", strings.Join(t.Tags, ", "))
	return nil
}
