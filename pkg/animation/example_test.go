package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/toastkit/pkg/animation"
	dtesting "github.com/go-drift/toastkit/pkg/testing"
)

// This example shows how to create and control an animation.
func ExampleAnimationController() {
	ft := dtesting.NewFrameTester()
	controller := animation.NewAnimationController(ft.Driver(), 100*time.Millisecond)

	controller.AddListener(func() {
		fmt.Printf("Value: %.2f\n", controller.Value)
	})

	controller.Forward()
	ft.SetFrameDuration(25 * time.Millisecond)
	ft.PumpFor(100 * time.Millisecond)
	controller.Dispose()

	// Output:
	// Value: 0.25
	// Value: 0.50
	// Value: 0.75
	// Value: 1.00
}

// This example shows how to listen for animation status changes.
func ExampleAnimationController_statusListener() {
	ft := dtesting.NewFrameTester()
	controller := animation.NewAnimationController(ft.Driver(), 50*time.Millisecond)

	controller.AddStatusListener(func(status animation.AnimationStatus) {
		switch status {
		case animation.AnimationDismissed:
			fmt.Println("at start")
		case animation.AnimationForward:
			fmt.Println("animating forward")
		case animation.AnimationReverse:
			fmt.Println("animating in reverse")
		case animation.AnimationCompleted:
			fmt.Println("completed")
		}
	})

	controller.Forward()
	ft.PumpFor(100 * time.Millisecond)
	controller.Reverse()
	ft.PumpFor(100 * time.Millisecond)
	controller.Dispose()

	// Output:
	// animating forward
	// completed
	// animating in reverse
	// at start
}

// This example shows how to map controller progress onto another range.
func ExampleTween() {
	ft := dtesting.NewFrameTester()
	controller := animation.NewAnimationController(ft.Driver(), 100*time.Millisecond)
	offset := animation.TweenFloat64(48, 0)

	controller.Forward()
	ft.SetFrameDuration(50 * time.Millisecond)
	ft.Pump()
	fmt.Printf("%.0f\n", offset.Transform(controller))
	ft.PumpFor(50 * time.Millisecond)
	fmt.Printf("%.0f\n", offset.Transform(controller))
	ft.PumpFor(50 * time.Millisecond)
	fmt.Printf("%.0f\n", offset.Transform(controller))

	// Output:
	// 48
	// 24
	// 0
}

// This example shows a one-shot timer on the driver's clock.
func ExampleFrameDriver_AfterFunc() {
	ft := dtesting.NewFrameTester()
	ft.Driver().AfterFunc(time.Second, func() {
		fmt.Println("fired")
	})

	ft.PumpFor(999 * time.Millisecond)
	fmt.Println("waiting")
	ft.PumpFor(time.Millisecond)

	// Output:
	// waiting
	// fired
}
