/*
Command comp is a reverse Polish notation calculator.

It evaluates programs written as whitespace separated words against a
stack of numbers. Each number is pushed as it is read; each command pops its
operands from the top of the stack and pushes its results back:

	comp 3 4 + 2 x        # prints 14

Programs come from the command line, from a file given with -f (command line
words are evaluated after the file), from standard input, or from an
interactive session with line editing and history (the default when standard
input is a terminal and no program is given). In a session, :help lists the
commands, :dump shows the VM state, and :q quits.

Section 1: Words

Any word that parses as a finite number is a literal; spellings like inf
and nan are plain words, so they may name functions and variables. A word
starting with # is a text literal, used as input for the radix and color
conversions:

	#ff hex_dec               # 255
	#ff8000 hex_rgb           # 255 128 0
	#ff 80 #0a rgbh           # color swatch, #ff800a

Any other word names a built-in command, a user function, or a variable,
resolved in that order. Words that are none of these stop evaluation with an
error naming the word and where it was read from.

The words < > { } bracket comments, which nest within the same kind of
bracket:

	1 2 + < a comment { still a comment } >

Section 2: Commands

Stack manipulation: drop dup swap cls clr roll rot. The roll command moves
the top value to the bottom of the stack, rot moves the bottom value to the
top.

Memory: sa sb sc pop a value into one of three fixed slots; _a _b _c push a
slot's value back. Any other name may be bound with =name, then recalled by
its bare name:

	5 =rate 100 rate x        # 500

Arithmetic: + - x / % mod ^ exp ++ -- chs abs round int inv sqrt throot
proot ! gcd min max avg, and the whole stack reductions +_ x_ min_ max_
avg_. Constants: pi e g. Trigonometry: deg_rad rad_deg sin asin cos acos tan
atan. Logarithms: log log10 log2 ln logn. Other: rand pln.

Conversions: dec_hex hex_dec dec_bin bin_dec bin_hex hex_bin c_f f_c mi_km
km_mi ft_m m_ft hex_rgb rgb_hex rgb rgbh tip tip+ a_b. rgb and rgbh push a
color swatch and the color's hex form. tip gives the tip on a bill and tip+
the bill with its tip; the tip percentage and the a_b conversion constant
come from the configuration file.

Division by zero follows IEEE 754, producing inf or NaN. Operations that
have no sensible result, like the square root or factorial of a negative
number, stop evaluation with a domain error.

Section 3: Functions

A function is defined between ( and ), naming it with the first word:

	( sq dup x )
	( fact dup 1 ifle drop 1 else dup -- fact x fi )
	5 fact                    # 120

Definitions are collected before anything else is evaluated, so a function
may be used before it is defined, and may call itself or any other function.
A function evaluates on the caller's stack.

Section 4: Conditionals

The words ifeq ifne ifgt ifge iflt ifle pop two values and compare the lower
one against the top one. When the comparison holds, the words up to the
matching else or fi are evaluated; otherwise the words between else and fi,
if any, are. Conditionals nest.

	3 5 iflt #less else #more fi pln

Section 5: Blocks

A block [ ... ] must be followed by one of the combinators map, fold, or
scan, which evaluate the block's words against small working stacks:

	1 2 3 [ dup x ] map               # 1 4 9
	10 11 12 13 14 15 0 [ + ] fold    # 75
	1 2 3 0 [ + ] scan                # 1 3 6

map replaces each value with the single value the block leaves when given
only that value. fold pops a seed, then evaluates the block once per
remaining value from the bottom up, given the accumulator and that value;
the top value left becomes the next accumulator. scan does the same, keeping
every accumulator.

Section 6: Errors

Any error stops the whole evaluation and leaves the stack as it was before.
In an interactive session the error is reported and the session continues;
otherwise comp exits non-zero.
*/
package main
