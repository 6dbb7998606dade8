package programs

import (
    "testing"
)

func TestPrograms(test *testing.T){
    ok, err := Run(false)
    if err != nil {
        test.Fatalf("programs failed with an error: %v", err)
    }
    if !ok {
        test.Fatalf("programs did not pass")
    }
}
