package lib

import (
    "strings"
)

/* Status register (P) http://wiki.nesdev.com/w/index.php/Status_flags
 *
 *  7 6 5 4 3 2 1 0
 *  N V _ B D I Z C
 */
type StatusFlags byte

const (
    FlagCarry StatusFlags = 1 << 0
    FlagZero StatusFlags = 1 << 1
    FlagInterruptDisable StatusFlags = 1 << 2
    /* can be set and cleared, but adc/sbc never look at it */
    FlagDecimal StatusFlags = 1 << 3
    FlagBreak StatusFlags = 1 << 4
    FlagUnused StatusFlags = 1 << 5
    FlagOverflow StatusFlags = 1 << 6
    FlagNegative StatusFlags = 1 << 7
)

func (flags StatusFlags) Has(flag StatusFlags) bool {
    return flags & flag == flag
}

func (flags *StatusFlags) Set(flag StatusFlags, set bool){
    if set {
        *flags = *flags | flag
    } else {
        *flags = *flags & (^flag)
    }
}

/* zero is set iff value is 0, negative is a copy of bit 7 */
func (flags *StatusFlags) SetZeroAndNegative(value byte){
    flags.Set(FlagZero, value == 0)
    flags.Set(FlagNegative, value & (1<<7) == (1<<7))
}

/* NV-BDIZC, upper case when the bit is set */
func (flags StatusFlags) String() string {
    var out strings.Builder
    names := "nv-bdizc"
    for i := 0; i < 8; i++ {
        bit := StatusFlags(1 << (7 - i))
        if flags.Has(bit) {
            out.WriteString(strings.ToUpper(names[i:i+1]))
        } else {
            out.WriteByte(names[i])
        }
    }
    return out.String()
}
