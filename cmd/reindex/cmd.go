package main

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/born-ml/reindex/internal/backend/cpu"
	"github.com/born-ml/reindex/internal/config"
	"github.com/born-ml/reindex/internal/reindex"
	"github.com/born-ml/reindex/internal/tensor"
)

const version = "v0.1.0-dev"

// envDocs lists the environment variables shown in the usage text.
var envDocs = [][2]string{
	{"BORN_REINDEX_CHECKED", "Validate metadata before every dispatch"},
	{"BORN_REINDEX_WORKERS", "Goroutines used by the CPU executor"},
	{"BORN_REINDEX_MIN_CHUNK", "Workgroups handled per goroutine"},
}

// appendEnvDocs adds the environment variable documentation to cmd.
func appendEnvDocs(cmd *cobra.Command) {
	envUsage := `
Environment Variables:
`
	for _, e := range envDocs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e[0], e[1])
	}
	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// newCLI builds the root command.
func newCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "reindex",
		Short:         "Permute, slice and broadcast tensors with specialized compute kernels",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Expose klog's -v and friends.
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	rootCmd.PersistentFlags().String("dtype", "f32", "Element type: f32, f16, i32 or u32")
	rootCmd.PersistentFlags().String("elem", "auto", "Packing: auto, scalar, vec2 or vec4")
	rootCmd.PersistentFlags().Bool("checked", false, "Validate metadata before dispatch (overrides BORN_REINDEX_CHECKED)")
	rootCmd.PersistentFlags().Bool("verify", false, "Compare the kernel result with reference loops")

	for _, cmd := range []*cobra.Command{
		newKernelCmd(),
		newPermuteCmd(),
		newSliceCmd(),
		newBroadcastCmd(),
		newVersionCmd(),
	} {
		appendEnvDocs(cmd)
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}

func newKernelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Print the WGSL source of a specialized kernel",
		Args:  cobra.NoArgs,
		RunE:  KernelHandler,
	}
	cmd.Flags().String("variant", "permute", "Mapping: permute, slice or broadcast")
	return cmd
}

func newPermuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "permute VALUES",
		Aliases: []string{"transpose"},
		Short:   "Reorder the axes of comma-separated values",
		Example: "  reindex permute --shape 2,3 --perm 1,0 1,2,3,4,5,6",
		Args:    cobra.ExactArgs(1),
		RunE:    PermuteHandler,
	}
	cmd.Flags().String("shape", "", "Input shape, e.g. 2,3")
	cmd.Flags().String("perm", "", "Axis order; empty reverses the axes")
	return cmd
}

func newSliceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "slice VALUES",
		Short:   "Select a sub-block of comma-separated values",
		Example: "  reindex slice --shape 2,3 --starts 1,0 --ends 2,2 10,20,30,40,50,60",
		Args:    cobra.ExactArgs(1),
		RunE:    SliceHandler,
	}
	cmd.Flags().String("shape", "", "Input shape, e.g. 2,3")
	cmd.Flags().String("starts", "", "First index on every axis")
	cmd.Flags().String("ends", "", "End index (exclusive) on every axis")
	return cmd
}

func newBroadcastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "broadcast VALUES",
		Aliases: []string{"expand"},
		Short:   "Expand comma-separated values to a larger shape",
		Example: "  reindex broadcast --shape 3 --to 2,3 1,2,3",
		Args:    cobra.ExactArgs(1),
		RunE:    BroadcastHandler,
	}
	cmd.Flags().String("shape", "", "Input shape, e.g. 3")
	cmd.Flags().String("to", "", "Target shape, e.g. 2,3")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reindex version %s\n", version)
		},
	}
}

// KernelHandler prints the specialized kernel selected by the flags.
func KernelHandler(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("variant")
	v, ok := reindex.ParseVariant(name)
	if !ok {
		return fmt.Errorf("unknown variant %q", name)
	}
	dt, err := dtypeFlag(cmd)
	if err != nil {
		return err
	}
	elem, auto, err := elemFlag(cmd)
	if err != nil {
		return err
	}
	if auto {
		elem = reindex.ScalarElement
	}

	k, err := reindex.NewSpecializer().Specialize(dt, elem, v)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), k.Source)
	return nil
}

// PermuteHandler runs a permute on the CPU executor.
func PermuteHandler(cmd *cobra.Command, args []string) error {
	shape, err := intsFlag(cmd, "shape")
	if err != nil {
		return err
	}
	perm, err := intsFlag(cmd, "perm")
	if err != nil {
		return err
	}
	op, err := reindex.NewPermute(shape, perm)
	if err != nil {
		return err
	}
	return runOp(cmd, op, shape, args[0], func(ref *cpu.CPUBackend, in *tensor.RawTensor) *tensor.RawTensor {
		return ref.Transpose(in, perm...)
	})
}

// SliceHandler runs a slice on the CPU executor.
func SliceHandler(cmd *cobra.Command, args []string) error {
	shape, err := intsFlag(cmd, "shape")
	if err != nil {
		return err
	}
	starts, err := intsFlag(cmd, "starts")
	if err != nil {
		return err
	}
	ends, err := intsFlag(cmd, "ends")
	if err != nil {
		return err
	}
	op, err := reindex.NewSlice(shape, starts, ends)
	if err != nil {
		return err
	}
	return runOp(cmd, op, shape, args[0], func(ref *cpu.CPUBackend, in *tensor.RawTensor) *tensor.RawTensor {
		return ref.Slice(in, starts, ends)
	})
}

// BroadcastHandler runs a broadcast on the CPU executor.
func BroadcastHandler(cmd *cobra.Command, args []string) error {
	shape, err := intsFlag(cmd, "shape")
	if err != nil {
		return err
	}
	target, err := intsFlag(cmd, "to")
	if err != nil {
		return err
	}
	op, err := reindex.NewBroadcast(shape, target)
	if err != nil {
		return err
	}
	return runOp(cmd, op, shape, args[0], func(ref *cpu.CPUBackend, in *tensor.RawTensor) *tensor.RawTensor {
		return ref.Expand(in, target)
	})
}

// referenceFunc computes the expected result of an op with reference loops.
type referenceFunc func(ref *cpu.CPUBackend, in *tensor.RawTensor) *tensor.RawTensor

// runOp parses values of the input shape, runs op and prints the result.
func runOp(cmd *cobra.Command, op *reindex.Op, shape tensor.Shape, values string, reference referenceFunc) error {
	dt, err := dtypeFlag(cmd)
	if err != nil {
		return err
	}
	elem, auto, err := elemFlag(cmd)
	if err != nil {
		return err
	}
	in, err := parseValues(dt, shape, values)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if cmd.Flags().Changed("checked") {
		cfg.Checked, _ = cmd.Flags().GetBool("checked")
	}
	rc := reindex.NewContext(reindex.NewCPUExecutor(cfg.Parallel), cfg)

	var out *tensor.RawTensor
	if auto {
		out, err = rc.Apply(cmd.Context(), op, in)
	} else {
		out, err = tensor.NewRaw(op.Shape, dt, tensor.CPU)
		if err == nil {
			err = rc.RunWith(cmd.Context(), op, dt, elem, in.Data(), out.Data())
		}
	}
	if err != nil {
		return err
	}

	if verify, _ := cmd.Flags().GetBool("verify"); verify {
		want := reference(cpu.New(), in)
		if !want.Shape().Equal(out.Shape()) || !bytes.Equal(want.Data(), out.Data()) {
			return fmt.Errorf("verify: kernel result %v differs from reference %v",
				formatValues(out), formatValues(want))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "shape: %v\n", []int(out.Shape()))
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(formatValues(out), ","))
	return nil
}

func dtypeFlag(cmd *cobra.Command) (tensor.DataType, error) {
	name, _ := cmd.Flags().GetString("dtype")
	dt, ok := tensor.ParseDataType(name)
	if !ok {
		return 0, fmt.Errorf("unknown dtype %q", name)
	}
	return dt, nil
}

// elemFlag returns the requested packing, or auto when the ops should pick it.
func elemFlag(cmd *cobra.Command) (elem reindex.KernelElement, auto bool, err error) {
	name, _ := cmd.Flags().GetString("elem")
	if name == "" || name == "auto" {
		return reindex.ScalarElement, true, nil
	}
	for _, e := range []reindex.KernelElement{reindex.ScalarElement, reindex.Vec2Element, reindex.Vec4Element} {
		if e.String() == name {
			return e, false, nil
		}
	}
	return 0, false, fmt.Errorf("unknown element %q", name)
}

func intsFlag(cmd *cobra.Command, name string) ([]int, error) {
	value, _ := cmd.Flags().GetString(name)
	ints, err := parseInts(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return ints, nil
}
